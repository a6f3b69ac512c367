package querybuilder

import (
	"testing"
	"time"
)

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("p.id", "u.name AS user_name").
		From("picks p").
		Join("JOIN users u ON u.id = p.user_id").
		Where(Eq("p.status", "pending"), In("p.game_date", []string{"2025-02-28", "2025-03-01"})).
		OrderBy("p.game_date ASC", "p.team ASC").
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT p.id, u.name AS user_name FROM picks p JOIN users u ON u.id = p.user_id " +
		"WHERE p.status = $1 AND p.game_date IN ($2, $3) ORDER BY p.game_date ASC, p.team ASC"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 || args[0] != "pending" || args[2] != "2025-03-01" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_EmptyInMatchesNothing(t *testing.T) {
	query, args, err := Select("id").From("picks").Where(In[string]("game_date", nil)).ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}
	if query != "SELECT id FROM picks WHERE 1=0" {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 0 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertModels(t *testing.T) {
	type row struct {
		ID        string    `db:"id"`
		Status    string    `db:"status"`
		UserName  string    `db:"user_name" insert:"-"`
		UpdatedAt time.Time `db:"-"`
	}

	query, args, err := InsertModels("picks", []row{
		{ID: "p1", Status: "completed", UserName: "Ana"},
		{ID: "p2", Status: "completed"},
	}, "ON CONFLICT (id) DO UPDATE SET status = EXCLUDED.status")
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO picks (id, status) VALUES ($1, $2), ($3, $4) ON CONFLICT (id) DO UPDATE SET status = EXCLUDED.status"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 4 || args[0] != "p1" || args[2] != "p2" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertModels_Empty(t *testing.T) {
	if _, _, err := InsertModels[struct{}]("picks", nil, ""); err == nil {
		t.Fatalf("expected error for empty models")
	}
}

func TestUpdateBuilder(t *testing.T) {
	query, args, err := Update("users").
		SetExpr("points", "points + ?", 2).
		SetExpr("updated_at", "NOW()").
		Where(Eq("id", "u1")).
		Suffix("RETURNING points").
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	wantQuery := "UPDATE users SET points = points + $1, updated_at = NOW() WHERE id = $2 RETURNING points"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != 2 || args[1] != "u1" {
		t.Fatalf("unexpected args: %+v", args)
	}
}
