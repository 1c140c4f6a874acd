package server

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/adforge/adforge-cli/pkg/models"
	"github.com/adforge/adforge-cli/pkg/rules"
)

// Fixtures is the in-memory dataset the stub backend serves.
type Fixtures struct {
	Sources []SourceFixture `yaml:"sources"`
	Rules   []rules.Rule    `yaml:"rules"`
}

// SourceFixture is one data source plus its snapshot.
type SourceFixture struct {
	Source  models.DataSource `yaml:"source"`
	Columns []models.Column   `yaml:"columns"`
	Rows    []models.DataRow  `yaml:"rows"`
}

// LoadFixtures reads a fixtures yaml file.
func LoadFixtures(path string) (*Fixtures, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixtures %s: %w", path, err)
	}
	var f Fixtures
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse fixtures %s: %w", path, err)
	}
	return &f, nil
}

// DemoFixtures returns the built-in dataset used when no fixtures file is
// given, so the wizard can be tried without any setup.
func DemoFixtures() *Fixtures {
	return &Fixtures{
		Sources: []SourceFixture{
			{
				Source: models.DataSource{ID: "demo-products", Name: "Product feed (demo)", Kind: "feed", RowCount: 8},
				Columns: []models.Column{
					{Name: "brand", Type: models.ColumnTypeString, SampleValues: []string{"Nike", "Adidas"}},
					{Name: "product", Type: models.ColumnTypeString, SampleValues: []string{"Air Max", "Ultraboost"}},
					{Name: "category", Type: models.ColumnTypeString, SampleValues: []string{"running", "basketball"}},
					{Name: "price", Type: models.ColumnTypeNumber, SampleValues: []string{"49.99", "129.99"}},
					{Name: "stock", Type: models.ColumnTypeNumber, SampleValues: []string{"0", "12"}},
					{Name: "on_sale", Type: models.ColumnTypeBoolean, SampleValues: []string{"true", "false"}},
				},
				Rows: []models.DataRow{
					{"brand": "Nike", "product": "Air Max", "category": "running", "price": 129.99, "stock": 12, "on_sale": true},
					{"brand": "Nike", "product": "Air Max", "category": "lifestyle", "price": 129.99, "stock": 4, "on_sale": false},
					{"brand": "Nike", "product": "Jordan", "category": "basketball", "price": 189.99, "stock": 7, "on_sale": false},
					{"brand": "Nike", "product": "Pegasus", "category": "running", "price": 119.99, "stock": 0, "on_sale": false},
					{"brand": "Adidas", "product": "Ultraboost", "category": "running", "price": 179.99, "stock": 9, "on_sale": true},
					{"brand": "Adidas", "product": "Gazelle", "category": "lifestyle", "price": 99.99, "stock": 22, "on_sale": false},
					{"brand": "Puma", "product": "Velocity", "category": "running", "price": 109.99, "stock": 3, "on_sale": true},
					{"brand": "Puma", "product": "Suede", "category": "lifestyle", "price": 89.99, "stock": 0, "on_sale": false},
				},
			},
		},
		Rules: []rules.Rule{
			{
				ID:         "rule-out-of-stock",
				Name:       "Skip out-of-stock products",
				Conditions: []rules.Condition{{Column: "stock", Operator: rules.OpEquals, Value: "0"}},
				Action:     rules.ActionExclude,
			},
			{
				ID:         "rule-sale-only",
				Name:       "Only products on sale",
				Conditions: []rules.Condition{{Column: "on_sale", Operator: rules.OpEquals, Value: "true"}},
				Action:     rules.ActionInclude,
			},
		},
	}
}

func (f *Fixtures) findSource(id string) *SourceFixture {
	for i := range f.Sources {
		if f.Sources[i].Source.ID == id {
			return &f.Sources[i]
		}
	}
	return nil
}
