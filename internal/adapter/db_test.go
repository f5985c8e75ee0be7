package adapter

import "testing"

func TestRebind(t *testing.T) {
	tests := []struct {
		name    string
		dialect Dialect
		query   string
		want    string
	}{
		{
			name:    "mysql untouched",
			dialect: DialectMySQL,
			query:   "SELECT * FROM reports WHERE game_id = ? AND user_id != ?",
			want:    "SELECT * FROM reports WHERE game_id = ? AND user_id != ?",
		},
		{
			name:    "postgres numbered",
			dialect: DialectPostgres,
			query:   "SELECT * FROM reports WHERE game_id = ? AND user_id != ?",
			want:    "SELECT * FROM reports WHERE game_id = $1 AND user_id != $2",
		},
		{
			name:    "question mark inside literal",
			dialect: DialectPostgres,
			query:   "SELECT '?' , gamertag FROM reports WHERE game_id = ?",
			want:    "SELECT '?' , gamertag FROM reports WHERE game_id = $1",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rebind(tt.dialect, tt.query); got != tt.want {
				t.Errorf("rebind = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestInClause(t *testing.T) {
	if got := inClause(3); got != "?, ?, ?" {
		t.Errorf("inClause(3) = %q", got)
	}
	if got := inClause(1); got != "?" {
		t.Errorf("inClause(1) = %q", got)
	}
	if got := inClause(0); got != "NULL" {
		t.Errorf("inClause(0) = %q", got)
	}
}

func TestClampLimit(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"", 50},
		{"garbage", 50},
		{"25", 25},
		{"0", 1},
		{"-3", 1},
		{"9999", 500},
		{"500", 500},
		{"1", 1},
	}
	for _, tt := range tests {
		if got := ClampLimit(tt.raw); got != tt.want {
			t.Errorf("ClampLimit(%q) = %d, want %d", tt.raw, got, tt.want)
		}
	}
}

func TestOpenUnknownDriver(t *testing.T) {
	if _, _, err := Open("sqlite", "file:x"); err == nil {
		t.Fatal("want error for unknown driver")
	}
}
