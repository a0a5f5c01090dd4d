package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	qt "github.com/frankban/quicktest"

	"todoManagement/internal/auth"
	"todoManagement/models"
)

func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestTokenIssue(t *testing.T) {
	c := qt.New(t)
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("JWT_SECRET", "cli-secret")

	out, err := runRoot(t, "token", "issue", "--user-id", "7", "--email", "admin@example.com", "--role", "admin")
	c.Assert(err, qt.IsNil)

	line := strings.TrimSpace(out)
	c.Assert(strings.HasPrefix(line, auth.BearerPrefix), qt.IsTrue)
	codec, err := auth.NewCodec("cli-secret", 0)
	c.Assert(err, qt.IsNil)
	id, err := codec.Verify(strings.TrimPrefix(line, auth.BearerPrefix))
	c.Assert(err, qt.IsNil)
	c.Assert(id, qt.Equals, auth.Identity{ID: 7, Email: "admin@example.com", Role: models.RoleAdmin})
}

func TestTokenIssue_RejectsBadUserID(t *testing.T) {
	c := qt.New(t)
	t.Setenv("JWT_SECRET", "cli-secret")

	_, err := runRoot(t, "token", "issue", "--user-id", "abc", "--email", "a@example.com")
	c.Assert(err, qt.ErrorMatches, "--user-id must be a positive integer")
}

func TestMigrateUpDown(t *testing.T) {
	c := qt.New(t)
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("DB_DRIVER", "sqlite3")
	t.Setenv("DB_PATH", filepath.Join(t.TempDir(), "cli.db"))

	out, err := runRoot(t, "migrate", "up")
	c.Assert(err, qt.IsNil)
	c.Assert(out, qt.Equals, "schema at version 2\n")

	out, err = runRoot(t, "migrate", "down")
	c.Assert(err, qt.IsNil)
	c.Assert(out, qt.Equals, "rolled back; schema at version 1\n")
}
