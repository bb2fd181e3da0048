package domain

import "strconv"

// ChangeKind classifies an entry in a merge change log.
type ChangeKind string

// Change kinds produced by Merge.
const (
	ChangeAdded   ChangeKind = "added"
	ChangeUpdated ChangeKind = "updated"
)

// ChangeEntry records one effect of a merge.
type ChangeEntry struct {
	Kind  ChangeKind `json:"type"`
	Quote Quote      `json:"quote"`
}

// DeletionPolicy decides what a merge does with remote quotes the user deleted locally.
type DeletionPolicy string

const (
	// DeletionReadd lets a remote copy of a locally deleted quote come back on the next merge.
	DeletionReadd DeletionPolicy = "readd"

	// DeletionRespect keeps locally deleted quotes out of the collection using tombstones.
	DeletionRespect DeletionPolicy = "respect"
)

// MergeOptions tunes Merge. The zero value reproduces plain last-write-wins.
type MergeOptions struct {
	// Tombstones holds keys of locally deleted quotes that must not be re-added.
	Tombstones map[QuoteKey]struct{}
}

// MergeResult is the output of Merge.
type MergeResult struct {
	Merged  []Quote
	Changes []ChangeEntry
}

// Counts returns the number of additions and updates in the change log.
func (r MergeResult) Counts() (added, updated int) {
	for _, c := range r.Changes {
		switch c.Kind {
		case ChangeAdded:
			added++
		case ChangeUpdated:
			updated++
		}
	}

	return added, updated
}

// HasChanges reports whether the merge altered the collection.
func (r MergeResult) HasChanges() bool {
	return len(r.Changes) > 0
}

// Merge reconciles the local collection with a remote snapshot using
// last-write-wins on LastModified, matching records by Quote.Key.
//
// Local order is preserved and remote-only quotes are appended in remote order.
// A local quote is replaced only when the remote timestamp is strictly later;
// ties keep the local copy. Additions are listed before updates in Changes.
// A remote quote whose id is already held by a different record is stored
// under the first free "<id>_<n>" (n from 2), so ids stay unique.
// Merge never mutates its inputs.
func Merge(local, remote []Quote, opts MergeOptions) MergeResult {
	merged := CloneQuotes(local)

	index := make(map[QuoteKey]int, len(merged))
	owners := make(map[string]int, len(merged))

	for i, q := range merged {
		if _, seen := index[q.Key()]; !seen {
			index[q.Key()] = i
		}

		if _, seen := owners[q.ID]; !seen {
			owners[q.ID] = i
		}
	}

	var added, updated []ChangeEntry

	considered := make(map[QuoteKey]struct{}, len(remote))

	for _, r := range remote {
		key := r.Key()

		if _, dup := considered[key]; dup {
			continue
		}

		considered[key] = struct{}{}

		pos, ok := index[key]
		if !ok {
			if _, deleted := opts.Tombstones[key]; deleted {
				continue
			}

			pos = len(merged)
			r.ID = claimID(owners, r.ID, pos)

			merged = append(merged, r)
			index[key] = pos
			added = append(added, ChangeEntry{Kind: ChangeAdded, Quote: r})

			continue
		}

		if r.LastModified > merged[pos].LastModified {
			if owners[merged[pos].ID] == pos {
				delete(owners, merged[pos].ID)
			}

			r.ID = claimID(owners, r.ID, pos)

			merged[pos] = r
			updated = append(updated, ChangeEntry{Kind: ChangeUpdated, Quote: r})
		}
	}

	changes := make([]ChangeEntry, 0, len(added)+len(updated))
	changes = append(changes, added...)
	changes = append(changes, updated...)

	return MergeResult{Merged: merged, Changes: changes}
}

// claimID returns id, or its first free "<id>_<n>" variant when another
// position owns id, and records pos as the owner.
func claimID(owners map[string]int, id string, pos int) string {
	candidate := id

	for n := 2; ; n++ {
		if owner, taken := owners[candidate]; !taken || owner == pos {
			break
		}

		candidate = id + "_" + strconv.Itoa(n)
	}

	owners[candidate] = pos

	return candidate
}

// TombstoneSet builds the lookup used by MergeOptions from a key list.
func TombstoneSet(keys []QuoteKey) map[QuoteKey]struct{} {
	set := make(map[QuoteKey]struct{}, len(keys))
	for _, k := range keys {
		set[k] = struct{}{}
	}

	return set
}
