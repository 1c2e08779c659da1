package schema

import "strings"

var abbreviations = map[string]string{
	// Common Nouns
	"nm": "name", "dt": "date", "no": "number", "cd": "code",
	"desc": "description", "amt": "amount", "cnt": "count", "qty": "quantity",
	"addr": "address", "tel": "phone", "ph": "phone",
	"pwd": "password", "passwd": "password", "pw": "password",
	"msg": "message", "txt": "text", "tit": "title", "subj": "subject",
	"usr": "user", "grp": "group", "cat": "category",
	"uid": "id", "pid": "id",

	// Finance / portfolio domain
	"acct": "account", "hh": "household", "adv": "advisor",
	"bal": "balance", "px": "price", "tkr": "symbol", "sym": "symbol",
	"pos": "position", "alloc": "allocation", "div": "dividend",
	"mv": "value", "aum": "value", "pct": "percent",

	// Verbs / Status
	"reg": "registered", "mod": "modified", "del": "deleted", "cre": "created",
	"upd": "updated", "yn": "yesno", "stat": "status", "sts": "status",
	"typ": "type", "val": "value",
	"ord": "order", "seq": "sequence", "idx": "index",
	"is": "yesno", "flg": "flag",
}

// AnalyzeMeaning infers what a column holds from its name, expanding
// known abbreviations. Used to steer sample-data generation.
func AnalyzeMeaning(colName string) string {
	parts := strings.Split(strings.ToLower(colName), "_")
	var decoded []string
	for _, part := range parts {
		if full, ok := abbreviations[part]; ok {
			decoded = append(decoded, full)
		} else {
			decoded = append(decoded, part)
		}
	}
	return strings.Join(decoded, " ")
}
