package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quote(id, text, category, ts string, source Source) Quote {
	return Quote{ID: id, Text: text, Category: category, LastModified: ts, Source: source}
}

const (
	t1 = "2024-01-01T00:00:00.000Z"
	t2 = "2024-02-01T00:00:00.000Z"
)

func TestMerge_AddsRemoteOnlyQuotes(t *testing.T) {
	local := []Quote{quote("local_1", "A", "x", t1, SourceLocal)}
	remote := []Quote{quote("server_1", "B", "y", t1, SourceServer)}

	result := Merge(local, remote, MergeOptions{})

	require.Len(t, result.Merged, 2)
	assert.Equal(t, local[0], result.Merged[0])
	assert.Equal(t, remote[0], result.Merged[1])
	assert.Equal(t, []ChangeEntry{{Kind: ChangeAdded, Quote: remote[0]}}, result.Changes)
}

func TestMerge_LaterRemoteReplacesLocal(t *testing.T) {
	tests := []struct {
		name          string
		localCategory string
		remoteCat     string
	}{
		{name: "same category", localCategory: "x", remoteCat: "x"},
		{name: "category differs only in case", localCategory: "x", remoteCat: "X"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			local := []Quote{quote("local_1", "A", tt.localCategory, t1, SourceLocal)}
			remote := []Quote{quote("server_9", "A", tt.remoteCat, t2, SourceServer)}

			result := Merge(local, remote, MergeOptions{})

			require.Len(t, result.Merged, 1)
			assert.Equal(t, remote[0], result.Merged[0])
			assert.Equal(t, []ChangeEntry{{Kind: ChangeUpdated, Quote: remote[0]}}, result.Changes)
		})
	}
}

func TestMerge_TieAndOlderKeepLocal(t *testing.T) {
	tests := []struct {
		name     string
		remoteTS string
	}{
		{name: "equal timestamps", remoteTS: t1},
		{name: "older remote", remoteTS: "2023-12-31T23:59:59.999Z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			local := []Quote{quote("local_1", "A", "x", t1, SourceLocal)}
			remote := []Quote{quote("server_1", "A", "x", tt.remoteTS, SourceServer)}

			result := Merge(local, remote, MergeOptions{})

			assert.Equal(t, local, result.Merged)
			assert.Empty(t, result.Changes)
			assert.False(t, result.HasChanges())
		})
	}
}

func TestMerge_TextMatchIsCaseSensitive(t *testing.T) {
	local := []Quote{quote("local_1", "stay hungry", "life", t1, SourceLocal)}
	remote := []Quote{quote("server_1", "Stay hungry", "life", t2, SourceServer)}

	result := Merge(local, remote, MergeOptions{})

	require.Len(t, result.Merged, 2)
	added, updated := result.Counts()
	assert.Equal(t, 1, added)
	assert.Equal(t, 0, updated)
}

func TestMerge_AdditionsBeforeUpdates(t *testing.T) {
	local := []Quote{quote("local_1", "A", "x", t1, SourceLocal)}
	remote := []Quote{
		quote("server_1", "A", "x", t2, SourceServer),
		quote("server_2", "B", "y", t1, SourceServer),
	}

	result := Merge(local, remote, MergeOptions{})

	require.Len(t, result.Changes, 2)
	assert.Equal(t, ChangeAdded, result.Changes[0].Kind)
	assert.Equal(t, "B", result.Changes[0].Quote.Text)
	assert.Equal(t, ChangeUpdated, result.Changes[1].Kind)
	assert.Equal(t, "A", result.Changes[1].Quote.Text)
}

func TestMerge_DuplicateRemoteKeysFirstWins(t *testing.T) {
	remote := []Quote{
		quote("server_1", "A", "x", t1, SourceServer),
		quote("server_2", "A", "X", t2, SourceServer),
	}

	result := Merge(nil, remote, MergeOptions{})

	require.Len(t, result.Merged, 1)
	assert.Equal(t, "server_1", result.Merged[0].ID)
	assert.Len(t, result.Changes, 1)
}

func TestMerge_IsDeterministicAndPure(t *testing.T) {
	local := []Quote{
		quote("local_1", "A", "x", t1, SourceLocal),
		quote("local_2", "C", "z", t2, SourceLocal),
	}
	remote := []Quote{
		quote("server_1", "A", "x", t2, SourceServer),
		quote("server_2", "B", "y", t1, SourceServer),
	}

	localCopy := CloneQuotes(local)
	remoteCopy := CloneQuotes(remote)

	first := Merge(local, remote, MergeOptions{})
	second := Merge(local, remote, MergeOptions{})

	assert.Equal(t, first, second)
	assert.Equal(t, localCopy, local, "local input must not be mutated")
	assert.Equal(t, remoteCopy, remote, "remote input must not be mutated")
}

func TestMerge_IsIdempotent(t *testing.T) {
	local := []Quote{quote("local_1", "A", "x", t1, SourceLocal)}
	remote := []Quote{
		quote("server_1", "A", "X", t2, SourceServer),
		quote("server_2", "B", "y", t1, SourceServer),
	}

	once := Merge(local, remote, MergeOptions{})
	twice := Merge(once.Merged, remote, MergeOptions{})

	assert.Equal(t, once.Merged, twice.Merged)
	assert.Empty(t, twice.Changes)
}

func TestMerge_EmptyInputs(t *testing.T) {
	result := Merge(nil, nil, MergeOptions{})

	assert.NotNil(t, result.Merged)
	assert.Empty(t, result.Merged)
	assert.Empty(t, result.Changes)
}

func TestMerge_TombstonesSuppressReadd(t *testing.T) {
	remote := []Quote{
		quote("server_1", "gone", "x", t1, SourceServer),
		quote("server_2", "kept", "y", t1, SourceServer),
	}

	opts := MergeOptions{Tombstones: TombstoneSet([]QuoteKey{{Text: "gone", Category: "x"}})}
	result := Merge(nil, remote, opts)

	require.Len(t, result.Merged, 1)
	assert.Equal(t, "kept", result.Merged[0].Text)

	readd := Merge(nil, remote, MergeOptions{})
	assert.Len(t, readd.Merged, 2)
}

func TestMerge_KeepsIDsUnique(t *testing.T) {
	tests := []struct {
		name    string
		local   []Quote
		remote  []Quote
		wantIDs []string
	}{
		{
			name:    "remote text changed under a known id",
			local:   []Quote{quote("server_1", "old text", "x", t1, SourceServer)},
			remote:  []Quote{quote("server_1", "new text", "x", t2, SourceServer)},
			wantIDs: []string{"server_1", "server_1_2"},
		},
		{
			name:  "one fetch repeats a remote id",
			local: nil,
			remote: []Quote{
				quote("server_1", "A", "x", t1, SourceServer),
				quote("server_1", "B", "x", t1, SourceServer),
				quote("server_1", "C", "x", t1, SourceServer),
			},
			wantIDs: []string{"server_1", "server_1_2", "server_1_3"},
		},
		{
			name: "update takes an id held elsewhere",
			local: []Quote{
				quote("server_1", "A", "x", t1, SourceServer),
				quote("local_1", "B", "x", t1, SourceLocal),
			},
			remote:  []Quote{quote("server_1", "B", "x", t2, SourceServer)},
			wantIDs: []string{"server_1", "server_1_2"},
		},
		{
			name:    "update keeps its own id",
			local:   []Quote{quote("server_1", "A", "x", t1, SourceServer)},
			remote:  []Quote{quote("server_1", "A", "x", t2, SourceServer)},
			wantIDs: []string{"server_1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Merge(tt.local, tt.remote, MergeOptions{})

			ids := make([]string, 0, len(result.Merged))
			for _, q := range result.Merged {
				ids = append(ids, q.ID)
			}

			assert.Equal(t, tt.wantIDs, ids)
			assert.Equal(t, "server_1", tt.remote[0].ID, "inputs are not mutated")
		})
	}
}

func TestMerge_RenamedIDIsStableAcrossSyncs(t *testing.T) {
	local := []Quote{quote("server_1", "old text", "x", t1, SourceServer)}
	remote := []Quote{quote("server_1", "new text", "x", t2, SourceServer)}

	first := Merge(local, remote, MergeOptions{})
	second := Merge(first.Merged, remote, MergeOptions{})

	assert.Empty(t, second.Changes)
	assert.Equal(t, first.Merged, second.Merged)
}
