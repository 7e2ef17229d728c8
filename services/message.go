package services

import (
	"fmt"
	"net/url"
	"strings"

	"warung-backend/models"
	"warung-backend/utils"
)

// 订单文案生成：把最终购物车状态排成一段可读的 WhatsApp 消息
// 这里只消费 CartState，不做任何校验和改动

// BuildOrderMessage 逐行列出菜名、数量、行总价、配料（数量>1 才带 (Nx)）、备注，末尾带总计
func BuildOrderMessage(state models.CartState, customerName string) string {
	var b strings.Builder
	b.WriteString("*PESANAN DARI WEBSITE*\n\n")
	if name := strings.TrimSpace(customerName); name != "" {
		fmt.Fprintf(&b, "Nama: %s\n\n", name)
	}

	for i, line := range state.Items {
		fmt.Fprintf(&b, "%d. %s\n", i+1, line.MenuItem.Name)
		fmt.Fprintf(&b, "   Jumlah: %dx\n", line.Quantity)
		fmt.Fprintf(&b, "   Harga: %s\n", utils.FormatCurrency(line.TotalPrice))
		if len(line.SelectedToppings) > 0 {
			names := make([]string, 0, len(line.SelectedToppings))
			for _, t := range line.SelectedToppings {
				qty := t.Quantity
				if qty <= 0 {
					qty = 1
				}
				if qty > 1 {
					names = append(names, fmt.Sprintf("%s (%dx)", t.Name, qty))
				} else {
					names = append(names, t.Name)
				}
			}
			fmt.Fprintf(&b, "   Topping: %s\n", strings.Join(names, ", "))
		}
		if line.Notes != "" {
			fmt.Fprintf(&b, "   Catatan: %s\n", line.Notes)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "*TOTAL: %s*\n\n", utils.FormatCurrency(state.Total))
	b.WriteString("Mohon konfirmasi pesanan ini. Terima kasih!")
	return b.String()
}

// WhatsAppURL 拼 wa.me 深链，空格按 %20 编码（与前端 encodeURIComponent 一致）
func WhatsAppURL(phone, message string) string {
	encoded := strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
	return fmt.Sprintf("https://wa.me/%s?text=%s", phone, encoded)
}
