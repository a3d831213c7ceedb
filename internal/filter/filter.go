// Package filter selects which normalized records get rendered.
package filter

import (
	"strings"

	"backpack-visualizer/internal/record"
)

// Criteria combines every CLI filter. Zero values mean "no constraint".
type Criteria struct {
	Owner         string // owner name or uuid substring (backpacks)
	Item          string // item id substring
	Upgrade       string // upgrade id substring (backpacks)
	ContainerType string // container id substring
	NoDungeon     bool   // exclude dungeon containers
	RawNBT        string // raw substring over the container item dump
	Query         string // legacy free-text query
}

// Matches reports whether a record passes all set filters.
func (c Criteria) Matches(r *record.Record) bool {
	if r.Kind == record.KindContainer {
		if c.NoDungeon && r.Dungeon {
			return false
		}
		if c.ContainerType != "" &&
			!strings.Contains(strings.ToLower(r.DisplayID), strings.ToLower(c.ContainerType)) {
			return false
		}
		if c.RawNBT != "" && !strings.Contains(r.RawItems, c.RawNBT) {
			return false
		}
	}

	if c.Item != "" && !hasItem(r, strings.ToLower(c.Item)) {
		return false
	}

	if c.Owner != "" {
		q := strings.ToLower(c.Owner)
		if !strings.Contains(strings.ToLower(ownerName(r)), q) &&
			!strings.Contains(strings.ToLower(ownerKey(r)), q) {
			return false
		}
	}

	if c.Upgrade != "" && !hasUpgrade(r, strings.ToLower(c.Upgrade)) {
		return false
	}

	if c.Query != "" {
		q := strings.ToLower(c.Query)
		if !strings.Contains(strings.ToLower(ownerName(r)), q) &&
			!strings.Contains(strings.ToLower(ownerKey(r)), q) &&
			!hasItem(r, q) && !hasUpgrade(r, q) {
			return false
		}
	}

	return true
}

func hasItem(r *record.Record, q string) bool {
	for _, item := range r.Inventory {
		if strings.Contains(item.ID, q) {
			return true
		}
	}
	return false
}

func hasUpgrade(r *record.Record, q string) bool {
	for _, upg := range r.Upgrades {
		if strings.Contains(upg.ID, q) {
			return true
		}
	}
	return false
}

func ownerName(r *record.Record) string {
	if r.Kind == record.KindContainer {
		return "Container"
	}
	return r.PlayerName
}

func ownerKey(r *record.Record) string {
	if r.Kind == record.KindContainer {
		return r.Identity()
	}
	return r.UUID
}
