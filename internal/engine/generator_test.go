package engine_test

import (
	"strings"
	"testing"

	"github.com/Kingcorpe/portmanagement--sub005/internal/engine"
	"github.com/Kingcorpe/portmanagement--sub005/internal/schema"
)

func col(name, dataType string, length int) *schema.Column {
	return &schema.Column{
		Name:     name,
		DataType: dataType,
		Length:   length,
		Meaning:  schema.AnalyzeMeaning(name),
	}
}

func TestGenerateValue_StringMeanings(t *testing.T) {
	v := engine.GenerateValue(col("email", "varchar", 100), "clients")
	s, ok := v.(string)
	if !ok || !strings.Contains(s, "@") {
		t.Errorf("email column produced %v", v)
	}

	v = engine.GenerateValue(col("tkr", "varchar", 10), "positions")
	s, ok = v.(string)
	if !ok || len(s) < 3 || len(s) > 4 || s != strings.ToUpper(s) {
		t.Errorf("ticker column produced %v", v)
	}
}

func TestGenerateValue_RespectsLength(t *testing.T) {
	for i := 0; i < 20; i++ {
		v := engine.GenerateValue(col("name", "varchar", 5), "clients")
		s, ok := v.(string)
		if !ok {
			t.Fatalf("name column produced %T", v)
		}
		if len([]rune(s)) > 5 {
			t.Errorf("value %q exceeds column length 5", s)
		}
	}
}

func TestGenerateValue_NumericTypes(t *testing.T) {
	if _, ok := engine.GenerateValue(col("quantity", "int", 0), "positions").(int); !ok {
		t.Error("int column must produce an int")
	}
	if _, ok := engine.GenerateValue(col("price", "numeric", 0), "quotes").(float64); !ok {
		t.Error("numeric column must produce a float64")
	}
	if _, ok := engine.GenerateValue(col("enabled", "bool", 0), "alerts").(bool); !ok {
		t.Error("bool column must produce a bool")
	}
}

func TestGenerateValue_Temporal(t *testing.T) {
	v := engine.GenerateValue(col("created_at", "date", 0), "tasks")
	s, ok := v.(string)
	if !ok || len(s) != len("2006-01-02") {
		t.Errorf("date column produced %v", v)
	}

	v = engine.GenerateValue(col("updated_at", "timestamp", 0), "tasks")
	s, ok = v.(string)
	if !ok || len(s) != len("2006-01-02 15:04:05") {
		t.Errorf("timestamp column produced %v", v)
	}
}

func TestGenerateValue_UnknownTypeIsNil(t *testing.T) {
	if v := engine.GenerateValue(col("payload", "tsvector", 0), "docs"); v != nil {
		t.Errorf("unknown type produced %v, want nil", v)
	}
}
