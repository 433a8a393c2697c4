package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/allisson/demands/cmd/app/commands"
	recordDomain "github.com/allisson/demands/internal/record/domain"
)

func TestFieldsFromCommand(t *testing.T) {
	var got recordDomain.Fields
	cmd := &cli.Command{
		Name:  "update",
		Flags: recordFieldFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			got = fieldsFromCommand(cmd)
			return nil
		},
	}

	err := cmd.Run(context.Background(), []string{
		"update", "--status", "Completed", "--completed-on", "2026-02-06", "--report", "",
	})
	require.NoError(t, err)

	require.NotNil(t, got.Status)
	assert.Equal(t, "Completed", *got.Status)
	require.NotNil(t, got.CompletedOn)
	assert.Equal(t, "2026-02-06", *got.CompletedOn)
	require.NotNil(t, got.Report)
	assert.Equal(t, "", *got.Report)
	assert.Nil(t, got.Description)
	assert.Nil(t, got.Deadline)
}

func TestListOptionsFromCommand(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected commands.ListOptions
	}{
		{"defaults", []string{"list"}, commands.ListOptions{}},
		{"filter", []string{"list", "--filter", "pending"}, commands.ListOptions{Filter: "pending"}},
		{
			"completed range",
			[]string{"list", "--completed-from", "2026-02-01", "--completed-to", "2026-02-28"},
			commands.ListOptions{CompletedFrom: "2026-02-01", CompletedTo: "2026-02-28"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got commands.ListOptions
			cmd := &cli.Command{
				Name:  "list",
				Flags: listFlags(),
				Action: func(ctx context.Context, cmd *cli.Command) error {
					got = listOptionsFromCommand(cmd)
					return nil
				},
			}

			require.NoError(t, cmd.Run(context.Background(), tt.args))
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestGetCommands(t *testing.T) {
	names := make([]string, 0)
	for _, cmd := range getCommands("test") {
		names = append(names, cmd.Name)
	}

	assert.ElementsMatch(t, []string{
		"server", "create-key",
		"add", "update", "get", "delete", "list",
		"export", "import", "backup", "restore",
	}, names)
}
