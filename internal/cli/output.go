package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-edge-sync/models"
)

// render writes v to the command's output, as indented JSON or with text.
func render[T any](cmd *cobra.Command, opts *RootOptions, v T, text func(io.Writer, T)) error {
	w := cmd.OutOrStdout()
	if opts.Format == FormatJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}

	text(w, v)
	return nil
}

const (
	kvFormat       = "%-19s %s\n"
	journalFormat  = "%-36s  %-9s  %-16s  %-20s  %-7s  %-8s  %s\n"
	errorsFormat   = "%-36s  %-16s  %-20s  %-7s  %-20s  %s\n"
	conflictFormat = "%-36s  %-10s  %-16s  %-20s  %s\n"
	tableFormat    = "%-24s  %s\n"
)

func kv(w io.Writer, key string, value any) {
	fmt.Fprintf(w, kvFormat, key+":", fmt.Sprint(value))
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func formatTimePtr(t *time.Time, none string) string {
	if t == nil {
		return none
	}
	return formatTime(*t)
}

func formatRecord(rec models.Record) string {
	if rec == nil {
		return "<none>"
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Sprintf("<unencodable: %v>", err)
	}
	return string(data)
}

func textVersion(w io.Writer, info models.AppBuildInfo) {
	kv(w, "version", info.BuildVersion())
	kv(w, "date", info.BuildDate())
	kv(w, "commit", info.BuildCommit())
}

func textConnectivity(w io.Writer, s models.ConnectivityStatus) {
	if s.Online {
		fmt.Fprintln(w, "online")
		return
	}
	fmt.Fprintln(w, "offline")
}

func textStatus(w io.Writer, s models.SyncStatus) {
	kv(w, "account", s.AccountID)
	kv(w, "online", s.Online)
	kv(w, "pending", s.PendingCount)
	kv(w, "failed", s.FailedCount)
	kv(w, "conflicts", s.ConflictCount)
	kv(w, "last sync", formatTimePtr(s.LastSyncAt, "never"))
	kv(w, "cycle in progress", s.CycleInProgress)
}

func textSummary(w io.Writer, s models.CycleSummary) {
	kv(w, "account", s.AccountID)
	kv(w, "duration", s.FinishedAt.Sub(s.StartedAt).String())
	if s.ResetCount > 0 {
		kv(w, "reset", s.ResetCount)
	}
	kv(w, "total", s.Total)
	kv(w, "synced", s.SyncedCount)
	kv(w, "failed", s.FailedCount)
	kv(w, "conflicts", s.ConflictCount)

	if len(s.Errors) == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, errorsFormat, "ENTRY", "TABLE", "RECORD", "OP", "OUTCOME", "ERROR")
	for _, e := range s.Errors {
		fmt.Fprintf(w, errorsFormat, e.EntryID, e.TableName, e.RecordID, e.Operation, e.Outcome, e.Error)
	}
}

func textStats(w io.Writer, s models.JournalStats) {
	kv(w, "account", s.AccountID)
	kv(w, "total", s.Total)

	fmt.Fprintln(w, "by status:")
	for _, status := range []models.JournalStatus{
		models.StatusPending, models.StatusSyncing, models.StatusSynced, models.StatusConflict, models.StatusFailed,
	} {
		kv(w, "  "+string(status), s.ByStatus[status])
	}

	if len(s.ByOperation) > 0 {
		fmt.Fprintln(w, "by operation:")
		for _, op := range slices.Sorted(maps.Keys(s.ByOperation)) {
			kv(w, "  "+string(op), s.ByOperation[op])
		}
	}

	if len(s.ByTable) > 0 {
		fmt.Fprintln(w, "by table:")
		for _, table := range slices.Sorted(maps.Keys(s.ByTable)) {
			kv(w, "  "+table, s.ByTable[table])
		}
	}
}

func textJournal(w io.Writer, entries []models.JournalEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "no journal entries")
		return
	}
	fmt.Fprintf(w, journalFormat, "ID", "STATUS", "TABLE", "RECORD", "OP", "ATTEMPTS", "CREATED")
	for _, e := range entries {
		fmt.Fprintf(w, journalFormat, e.ID, e.Status, e.TableName, e.RecordID, e.Operation,
			strconv.Itoa(e.Attempts), formatTime(e.CreatedAt))
	}
}

func textPurge(w io.Writer, res models.PurgeResult) {
	fmt.Fprintf(w, "deleted %d synced entries of %s older than %s\n", res.Deleted, res.AccountID, formatTime(res.Before))
}

func textConflicts(w io.Writer, conflicts []models.SyncConflict) {
	if len(conflicts) == 0 {
		fmt.Fprintln(w, "no unresolved conflicts")
		return
	}
	fmt.Fprintf(w, conflictFormat, "ID", "TYPE", "TABLE", "RECORD", "CREATED")
	for _, c := range conflicts {
		fmt.Fprintf(w, conflictFormat, c.ID, c.ConflictType, c.TableName, c.RecordID, formatTime(c.CreatedAt))
	}
}

func textConflict(w io.Writer, c models.SyncConflict) {
	kv(w, "id", c.ID)
	kv(w, "account", c.AccountID)
	kv(w, "journal entry", c.JournalEntryID)
	kv(w, "table", c.TableName)
	kv(w, "record", c.RecordID)
	kv(w, "type", c.ConflictType)
	kv(w, "created", formatTime(c.CreatedAt))
	kv(w, "local", formatRecord(c.LocalData))
	kv(w, "remote", formatRecord(c.RemoteData))

	if c.Resolution == nil {
		kv(w, "resolution", "unresolved")
		return
	}
	kv(w, "resolution", *c.Resolution)
	if c.ResolvedData != nil {
		kv(w, "resolved data", formatRecord(c.ResolvedData))
	}
	if c.ResolvedBy != nil {
		kv(w, "resolved by", *c.ResolvedBy)
	}
	kv(w, "resolved at", formatTimePtr(c.ResolvedAt, "-"))
}

func textPull(w io.Writer, res models.PullResult) {
	if len(res.TablesSynced) > 0 {
		fmt.Fprintf(w, tableFormat, "TABLE", "RECORDS")
		for _, table := range slices.Sorted(slices.Values(res.TablesSynced)) {
			fmt.Fprintf(w, tableFormat, table, strconv.Itoa(res.RecordsCount[table]))
		}
	} else {
		fmt.Fprintln(w, "no tables pulled")
	}

	if len(res.Errors) == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, tableFormat, "FAILED TABLE", "ERROR")
	for _, table := range slices.Sorted(maps.Keys(res.Errors)) {
		fmt.Fprintf(w, tableFormat, table, res.Errors[table])
	}
}
