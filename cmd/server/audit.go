package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/realm-api/internal/config"
	"github.com/KirkDiggler/realm-api/internal/entities"
	"github.com/KirkDiggler/realm-api/internal/errors"
	redisclient "github.com/KirkDiggler/realm-api/internal/redis"
	characterrepo "github.com/KirkDiggler/realm-api/internal/repositories/character"
	guildrepo "github.com/KirkDiggler/realm-api/internal/repositories/guild"
)

const (
	problemCorrupt      = "corrupt character record"
	problemNotOnRoster  = "character missing from its guild roster"
	problemMissingGuild = "character points at a missing guild"
	problemStrayMember  = "roster lists a character outside the guild"
)

var auditFix bool

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Check stored characters against guild rosters",
	Long: `Audit scans every character record and guild roster in redis and reports
records that do not decode and memberships the two sides disagree on.
With --fix, stray roster entries are removed.`,
	RunE: runAudit,
}

func init() {
	auditCmd.Flags().BoolVar(&auditFix, "fix", false, "remove stray roster entries")
}

type finding struct {
	Key     string
	ID      string
	Problem string
}

func runAudit(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	client, err := cfg.RedisClient()
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close() // nolint:errcheck // safe to ignore in cleanup
	}()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	findings, checked, err := auditRosters(ctx, client)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	report(out, findings, checked)

	if auditFix {
		removed, err := removeStrayMembers(ctx, client, findings)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(out, "Removed %d stray roster entries\n", removed)
	}

	return nil
}

func report(w io.Writer, findings []finding, checked int) {
	_, _ = fmt.Fprintf(w, "Checked %d characters, found %d problems\n", checked, len(findings))
	for _, f := range findings {
		_, _ = fmt.Fprintf(w, "  - %s %s: %s\n", f.Key, f.ID, f.Problem)
	}
}

// auditRosters returns every disagreement between character records and
// guild rosters along with the number of characters checked
func auditRosters(ctx context.Context, client redisclient.Client) ([]finding, int, error) {
	var findings []finding
	checked := 0

	iter := client.Scan(ctx, 0, characterrepo.Key("*"), 0).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		if strings.HasPrefix(key, characterrepo.Key("class:")) {
			continue
		}
		checked++

		raw, err := client.Get(ctx, key).Result()
		if err != nil {
			return nil, 0, errors.Wrapf(err, "failed to read %s", key)
		}

		var c entities.Character
		if err := json.Unmarshal([]byte(raw), &c); err != nil || c.ID == "" {
			findings = append(findings, finding{Key: key, Problem: problemCorrupt})
			continue
		}
		if c.GuildID == "" {
			continue
		}

		exists, err := client.Exists(ctx, guildrepo.Key(c.GuildID)).Result()
		if err != nil {
			return nil, 0, errors.Wrapf(err, "failed to check guild %s", c.GuildID)
		}
		if exists == 0 {
			findings = append(findings, finding{Key: key, ID: c.GuildID, Problem: problemMissingGuild})
			continue
		}

		if err := client.ZScore(ctx, characterrepo.GuildMembersKey(c.GuildID), c.ID).Err(); err != nil {
			if !redisclient.IsNil(err) {
				return nil, 0, errors.Wrapf(err, "failed to read roster of %s", c.GuildID)
			}
			findings = append(findings, finding{Key: key, ID: c.GuildID, Problem: problemNotOnRoster})
		}
	}
	if err := iter.Err(); err != nil {
		return nil, 0, errors.Wrap(err, "failed to scan characters")
	}

	rosters := client.Scan(ctx, 0, characterrepo.GuildMembersKey("*"), 0).Iterator()
	for rosters.Next(ctx) {
		key := rosters.Val()
		guildID := strings.TrimPrefix(key, characterrepo.GuildMembersKey(""))

		ids, err := client.ZRange(ctx, key, 0, -1).Result()
		if err != nil {
			return nil, 0, errors.Wrapf(err, "failed to read %s", key)
		}
		for _, id := range ids {
			raw, err := client.Get(ctx, characterrepo.Key(id)).Result()
			if err != nil && !redisclient.IsNil(err) {
				return nil, 0, errors.Wrapf(err, "failed to read character %s", id)
			}

			var c entities.Character
			if raw != "" {
				_ = json.Unmarshal([]byte(raw), &c) // nolint:errcheck // corrupt records are reported above
			}
			if c.GuildID != guildID {
				findings = append(findings, finding{Key: key, ID: id, Problem: problemStrayMember})
			}
		}
	}
	if err := rosters.Err(); err != nil {
		return nil, 0, errors.Wrap(err, "failed to scan rosters")
	}

	return findings, checked, nil
}

func removeStrayMembers(ctx context.Context, client redisclient.Client, findings []finding) (int, error) {
	removed := 0
	for _, f := range findings {
		if f.Problem != problemStrayMember {
			continue
		}
		n, err := client.ZRem(ctx, f.Key, f.ID).Result()
		if err != nil {
			return removed, errors.Wrapf(err, "failed to remove %s from %s", f.ID, f.Key)
		}
		removed += int(n)
	}
	return removed, nil
}
