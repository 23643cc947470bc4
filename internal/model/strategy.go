package model

import "time"

// StrategyCellCount is the fixed number of editable cells per strategy item.
const StrategyCellCount = 4

// StrategyCategory groups strategy items under a named heading within the
// sales-strategy matrix.
type StrategyCategory struct {
	CreatedAt time.Time
	ID        string
	Name      string
	Position  int
	Items     []StrategyItem
}

// StrategyItem is one row of the strategy matrix: a title and four
// free-text cells, each with an optional color tag.
type StrategyItem struct {
	CreatedAt  time.Time
	ID         string
	CategoryID string
	Title      string
	Position   int
	Cells      [StrategyCellCount]StrategyCell
}

// StrategyCell is one editable cell of a strategy item.
type StrategyCell struct {
	Text  string
	Color string
}

// StrategyHistory records a single cell edit. Cells are never hard-deleted;
// each change appends an entry carrying both the old and new value.
type StrategyHistory struct {
	ChangedAt time.Time
	ID        string
	ItemID    string
	Cell      int // 0..StrategyCellCount-1
	OldValue  string
	NewValue  string
}
