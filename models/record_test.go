package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeRecord_KeepsIntegersIntegral(t *testing.T) {
	rec, err := DecodeRecord([]byte(`{"id":"o1","version":3,"total":12.5,"status":"ready"}`))
	require.NoError(t, err)

	assert.Equal(t, int64(3), rec["version"])
	assert.Equal(t, 12.5, rec["total"])
	assert.Equal(t, "ready", rec["status"])
}

func TestDecodeRecord_InvalidJSON(t *testing.T) {
	_, err := DecodeRecord([]byte(`{"id":`))
	require.Error(t, err)
}

func TestRecord_UnmarshalJSON_InsideStruct(t *testing.T) {
	var body struct {
		Record Record `json:"record"`
		Empty  Record `json:"empty"`
	}

	err := json.Unmarshal([]byte(`{"record":{"version":7},"empty":null}`), &body)
	require.NoError(t, err)

	assert.Equal(t, int64(7), body.Record["version"])
	assert.Nil(t, body.Empty)
}

func TestRecord_Int64(t *testing.T) {
	tests := []struct {
		name   string
		value  any
		want   int64
		wantOK bool
	}{
		{name: "int64", value: int64(4), want: 4, wantOK: true},
		{name: "integral float", value: float64(5), want: 5, wantOK: true},
		{name: "fractional float", value: 5.5, wantOK: false},
		{name: "numeric string", value: "6", want: 6, wantOK: true},
		{name: "bytes", value: []byte("7"), want: 7, wantOK: true},
		{name: "text", value: "seven", wantOK: false},
		{name: "nil", value: nil, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Record{"version": tt.value}.Int64("version")
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestRecord_String(t *testing.T) {
	rec := Record{"a": "x", "b": int64(10), "c": 1.25, "d": nil}

	got, ok := rec.String("a")
	assert.True(t, ok)
	assert.Equal(t, "x", got)

	got, ok = rec.String("b")
	assert.True(t, ok)
	assert.Equal(t, "10", got)

	got, ok = rec.String("c")
	assert.True(t, ok)
	assert.Equal(t, "1.25", got)

	_, ok = rec.String("d")
	assert.False(t, ok)

	_, ok = rec.String("missing")
	assert.False(t, ok)
}

func TestRecord_CloneIsIndependent(t *testing.T) {
	orig := Record{"status": "ready"}
	cp := orig.Clone()
	cp["status"] = "completed"

	assert.Equal(t, "ready", orig["status"])
	assert.Nil(t, Record(nil).Clone())
}

func TestRecord_ColumnsSorted(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, Record{"c": 1, "a": 2, "b": 3}.Columns())
}

func TestJournalStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from JournalStatus
		to   JournalStatus
		want bool
	}{
		{StatusPending, StatusSynced, true},
		{StatusPending, StatusConflict, true},
		{StatusPending, StatusFailed, true},
		{StatusPending, StatusSyncing, true},
		{StatusSyncing, StatusPending, true},
		{StatusFailed, StatusPending, true},
		{StatusConflict, StatusSynced, true},
		{StatusFailed, StatusSynced, false},
		{StatusConflict, StatusPending, false},
		{StatusSynced, StatusPending, false},
		{StatusSynced, StatusFailed, false},
		{StatusSynced, StatusConflict, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestReplayOutcome_ConflictType(t *testing.T) {
	assert.Equal(t, ConflictVersion, OutcomeVersionConflict.ConflictType())
	assert.Equal(t, ConflictDelete, OutcomeNotFound.ConflictType())
	assert.Equal(t, ConflictConstraint, OutcomeConstraintViolation.ConflictType())
	assert.Empty(t, OutcomeTransient.ConflictType())
	assert.False(t, OutcomeTransient.IsConflict())
	assert.False(t, OutcomeOK.IsConflict())
}

func TestResolution_RequiresData(t *testing.T) {
	assert.True(t, ResolutionMerged.RequiresData())
	assert.True(t, ResolutionManual.RequiresData())
	assert.False(t, ResolutionLocalWins.RequiresData())
	assert.False(t, ResolutionRemoteWins.RequiresData())
	assert.False(t, Resolution("coin_flip").Valid())
}

func TestSyncConflict_RemoteDataMarshalsAsNull(t *testing.T) {
	data, err := json.Marshal(SyncConflict{ID: "c1", LocalData: Record{"id": "o1"}})
	require.NoError(t, err)

	assert.Contains(t, string(data), `"remote_data":null`)
}

func TestTransitionSources(t *testing.T) {
	assert.Equal(t, []JournalStatus{StatusPending, StatusSyncing, StatusConflict}, TransitionSources(StatusSynced))
	assert.Equal(t, []JournalStatus{StatusPending, StatusSyncing}, TransitionSources(StatusFailed))
	assert.Equal(t, []JournalStatus{StatusSyncing, StatusFailed}, TransitionSources(StatusPending))
	assert.Empty(t, TransitionSources(JournalStatus("archived")))
}

func TestRecord_Canonical(t *testing.T) {
	rec := Record{"id": "o1", "version": 2, "total": 5.0, "ratio": 0.25, "note": nil}

	got, err := rec.Canonical()
	require.NoError(t, err)

	assert.Equal(t, Record{"id": "o1", "version": int64(2), "total": int64(5), "ratio": 0.25, "note": nil}, got)
	assert.Equal(t, 5.0, rec["total"], "receiver is left untouched")

	again, err := got.Canonical()
	require.NoError(t, err)
	assert.Equal(t, got, again)

	empty, err := Record(nil).Canonical()
	require.NoError(t, err)
	assert.Nil(t, empty)
}
