package domain

import (
	"errors"
	"fmt"
)

var ErrInvalidInventoryChoice = errors.New(`inventory must be one of "Full", "Low" or "Empty"`)

// StockLevel is the stored inventory state of a stand.
type StockLevel string

const (
	StockHigh   StockLevel = "High"
	StockMedium StockLevel = "Medium"
	StockLow    StockLevel = "Low"
	StockNone   StockLevel = "None"
)

func (l StockLevel) IsValid() bool {
	switch l {
	case StockHigh, StockMedium, StockLow, StockNone:
		return true
	}

	return false
}

// InventoryChoice is what a visitor reports during a check-in. Medium is
// not reachable from here.
type InventoryChoice string

const (
	InventoryFull  InventoryChoice = "Full"
	InventoryLow   InventoryChoice = "Low"
	InventoryEmpty InventoryChoice = "Empty"
)

var InventoryChoices = []InventoryChoice{InventoryFull, InventoryLow, InventoryEmpty}

func (c InventoryChoice) StockLevel() (StockLevel, error) {
	switch c {
	case InventoryFull:
		return StockHigh, nil
	case InventoryLow:
		return StockLow, nil
	case InventoryEmpty:
		return StockNone, nil
	}

	return "", fmt.Errorf("%w: got %q", ErrInvalidInventoryChoice, string(c))
}
