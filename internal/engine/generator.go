package engine

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/Kingcorpe/portmanagement--sub005/internal/schema"
)

var seededRand = rand.New(rand.NewSource(time.Now().UnixNano()))

var tickerLetters = []rune("ABCDEFGHIJKLMNOPQRSTUVWXYZ")

func generateTicker() string {
	n := 3 + seededRand.Intn(2)
	runes := make([]rune, n)
	for i := range runes {
		runes[i] = tickerLetters[seededRand.Intn(len(tickerLetters))]
	}
	return string(runes)
}

func truncate(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) > limit {
		return string(runes[:limit])
	}
	return s
}

// GenerateValue generates a random value based on column definition.
// Column meaning (name analysis) steers string columns; numeric and
// temporal columns go by data type.
func GenerateValue(col *schema.Column, tableName string) any {
	dataType := strings.ToLower(col.DataType)
	colName := strings.ToLower(col.Name)
	meaning := col.Meaning

	// 1. String types: meaning first.
	if strings.Contains(dataType, "char") || strings.Contains(dataType, "text") ||
		strings.Contains(dataType, "string") || strings.Contains(dataType, "clob") {

		isID := strings.HasSuffix(colName, "id") || strings.HasSuffix(colName, "_id")

		switch {
		case isID || strings.Contains(meaning, "uuid") || strings.Contains(colName, "uuid") || strings.Contains(colName, "guid"):
			return gofakeit.UUID()
		case strings.Contains(meaning, "symbol"):
			return truncate(generateTicker(), col.Length)
		case strings.Contains(meaning, "email"):
			return truncate(gofakeit.Email(), col.Length)
		case strings.Contains(meaning, "phone"):
			return truncate(gofakeit.Phone(), col.Length)
		case strings.Contains(meaning, "first") && strings.Contains(meaning, "name"):
			return truncate(gofakeit.FirstName(), col.Length)
		case strings.Contains(meaning, "last") && strings.Contains(meaning, "name"):
			return truncate(gofakeit.LastName(), col.Length)
		case strings.Contains(meaning, "household") || strings.Contains(meaning, "company") || strings.Contains(meaning, "firm"):
			return truncate(gofakeit.Company(), col.Length)
		case strings.Contains(meaning, "name") || strings.Contains(meaning, "advisor") || strings.Contains(meaning, "client"):
			return truncate(gofakeit.Name(), col.Length)
		case strings.Contains(meaning, "address") || strings.Contains(meaning, "street"):
			return truncate(gofakeit.Street(), col.Length)
		case strings.Contains(meaning, "city"):
			return truncate(gofakeit.City(), col.Length)
		case strings.Contains(meaning, "state"):
			return truncate(gofakeit.StateAbr(), col.Length)
		case strings.Contains(meaning, "country"):
			return truncate(gofakeit.Country(), col.Length)
		case strings.Contains(meaning, "zip") || strings.Contains(meaning, "postal"):
			return gofakeit.Zip()
		case strings.Contains(meaning, "currency"):
			return gofakeit.CurrencyShort()
		case strings.Contains(meaning, "url"):
			return truncate(gofakeit.URL(), col.Length)
		case strings.Contains(meaning, "status"):
			return gofakeit.RandomString([]string{"active", "pending", "closed"})
		case strings.Contains(meaning, "yesno") || strings.HasPrefix(colName, "is_"):
			return gofakeit.RandomString([]string{"Y", "N"})
		case strings.Contains(meaning, "title") || strings.Contains(meaning, "subject"):
			return truncate(gofakeit.Sentence(3), col.Length)
		case strings.Contains(meaning, "description") || strings.Contains(meaning, "note") ||
			strings.Contains(meaning, "comment") || strings.Contains(meaning, "message") ||
			strings.Contains(meaning, "text"):
			return truncate(gofakeit.Sentence(10), col.Length)
		}

		if col.Length > 0 && col.Length < 20 {
			return truncate(gofakeit.Word(), col.Length)
		}
		return truncate(gofakeit.Sentence(5), col.Length)
	}

	// 2. Temporal types. Formatted strings keep cross-driver inserts simple.
	if strings.Contains(dataType, "date") || strings.Contains(dataType, "time") {
		val := gofakeit.DateRange(time.Now().AddDate(-1, 0, 0), time.Now())
		if dataType == "date" {
			return val.Format("2006-01-02")
		}
		if dataType == "time" {
			return val.Format("15:04:05")
		}
		return val.Format("2006-01-02 15:04:05")
	}

	// 3. Numeric types.
	if strings.Contains(dataType, "int") || strings.Contains(dataType, "integer") {
		if strings.Contains(meaning, "yesno") || strings.Contains(colName, "active") ||
			strings.Contains(colName, "enabled") || strings.HasPrefix(colName, "is_") {
			return seededRand.Intn(2)
		}
		if strings.Contains(colName, "year") {
			return 2000 + seededRand.Intn(26)
		}
		if strings.Contains(dataType, "tinyint") {
			return gofakeit.Number(0, 127)
		}
		if strings.Contains(dataType, "smallint") {
			return gofakeit.Number(1, 30000)
		}
		return gofakeit.Number(1, 50000)
	}

	if strings.Contains(dataType, "decimal") || strings.Contains(dataType, "numeric") ||
		strings.Contains(dataType, "float") || strings.Contains(dataType, "double") ||
		strings.Contains(dataType, "real") || strings.Contains(dataType, "money") {
		if strings.Contains(meaning, "quantity") || strings.Contains(meaning, "count") {
			return float64(gofakeit.Number(1, 1000))
		}
		if strings.Contains(meaning, "percent") || strings.Contains(meaning, "allocation") {
			return gofakeit.Float64Range(0, 100)
		}
		// prices, balances, amounts
		return gofakeit.Price(1.00, 100000.00)
	}

	if strings.Contains(dataType, "bool") || strings.Contains(dataType, "bit") {
		return gofakeit.Bool()
	}

	if strings.Contains(dataType, "uuid") {
		return gofakeit.UUID()
	}

	if strings.Contains(dataType, "binary") || strings.Contains(dataType, "blob") ||
		strings.Contains(dataType, "bytea") {
		return []byte(fmt.Sprintf("blob-%d", seededRand.Intn(1000)))
	}

	return nil
}
