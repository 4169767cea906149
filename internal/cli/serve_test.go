package cli

import "testing"

func TestServeCommandDefaults(t *testing.T) {
	c := &CLI{}
	cmd := c.serveCommand()

	addr := cmd.Flags().Lookup("addr")
	if addr == nil {
		t.Fatal("expected an --addr flag")
	}
	if addr.DefValue != ":8080" {
		t.Errorf("--addr default = %q, want %q", addr.DefValue, ":8080")
	}

	if cmd.Flags().Lookup("no-cache") == nil {
		t.Error("expected a --no-cache flag")
	}
	if cmd.Flags().Lookup("redis-addr") == nil {
		t.Error("expected a --redis-addr flag")
	}
}

func TestRootCommandRegistersAllSubcommands(t *testing.T) {
	c := &CLI{}
	root := c.RootCommand()

	want := []string{"generate", "inspect", "match", "serve", "tui", "cache", "completion"}
	for _, name := range want {
		found := false
		for _, sub := range root.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root command missing %q subcommand", name)
		}
	}
}
