package document

import "testing"

func TestDecode_IntoStruct(t *testing.T) {
	doc := mustDoc(t, "http://example.com/users/1", "User", map[string]any{
		"name":  "ana",
		"age":   34,
		"tags":  []any{"admin", "staff"},
		"edit":  NewLink("/users/1", "put"),
		"stats": map[string]any{"logins": 12},
	})

	var user struct {
		Name  string   `mapstructure:"name"`
		Age   int      `mapstructure:"age"`
		Tags  []string `mapstructure:"tags"`
		Stats struct {
			Logins int `mapstructure:"logins"`
		} `mapstructure:"stats"`
	}
	if err := Decode(doc, &user); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if user.Name != "ana" || user.Age != 34 || len(user.Tags) != 2 || user.Stats.Logins != 12 {
		t.Errorf("decoded user = %+v", user)
	}
}
