package services

import (
	"encoding/json"
	"sync"

	"warung-backend/models"
)

// memSnapshots 内存版快照仓库，测试用
type memSnapshots struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemSnapshots() *memSnapshots {
	return &memSnapshots{data: make(map[string][]byte)}
}

func (m *memSnapshots) Save(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.data[key] = data
	m.mu.Unlock()
	return nil
}

func (m *memSnapshots) Load(key string, out any) (bool, error) {
	m.mu.Lock()
	data, ok := m.data[key]
	m.mu.Unlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return false, err
	}
	return true, nil
}

func (m *memSnapshots) Delete(key string) error {
	m.mu.Lock()
	delete(m.data, key)
	m.mu.Unlock()
	return nil
}

func (m *memSnapshots) put(key string, raw []byte) {
	m.mu.Lock()
	m.data[key] = raw
	m.mu.Unlock()
}

func testSeblak() models.MenuItem {
	return models.MenuItem{
		ID:        "seblak",
		Name:      "Seblak",
		Price:     15000,
		Category:  models.CategoryMakanan,
		Available: true,
		Stock:     models.FiniteStock(10),
		Toppings: []models.Topping{
			{ID: "sosis", Name: "Sosis", Price: 5000, Stock: models.FiniteStock(20)},
			{ID: "bakso", Name: "Bakso", Price: 6000, Stock: models.UnlimitedStock()},
		},
	}
}

func testEsTeh() models.MenuItem {
	return models.MenuItem{
		ID:        "es-teh",
		Name:      "Es Teh",
		Price:     5000,
		Category:  models.CategoryMinuman,
		Available: true,
		Stock:     models.UnlimitedStock(),
	}
}
