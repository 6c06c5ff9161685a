package repository

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/feelio/feelio-backend/internal/moods/domain"
)

// The Realtime Database returns a node whose children have small integer keys
// either as an object or as a JSON array padded with nulls. Both shapes are
// accepted.

// DecodeMonth decodes a month node into day -> label.
func DecodeMonth(raw json.RawMessage) (domain.MonthMoods, error) {
	out := domain.MonthMoods{}
	children, err := decodeChildren(raw)
	if err != nil {
		return nil, fmt.Errorf("decode month: %w", err)
	}
	for key, child := range children {
		var label string
		if err := json.Unmarshal(child, &label); err != nil {
			continue
		}
		if key >= 1 && key <= 31 && label != "" {
			out[key] = label
		}
	}
	return out, nil
}

// DecodeYear decodes a year node into month -> day -> label.
func DecodeYear(raw json.RawMessage) (domain.YearMoods, error) {
	out := domain.YearMoods{}
	children, err := decodeChildren(raw)
	if err != nil {
		return nil, fmt.Errorf("decode year: %w", err)
	}
	for key, child := range children {
		if key < 1 || key > 12 {
			continue
		}
		month, err := DecodeMonth(child)
		if err != nil {
			return nil, err
		}
		if len(month) > 0 {
			out[time.Month(key)] = month
		}
	}
	return out, nil
}

func decodeChildren(raw json.RawMessage) (map[int]json.RawMessage, error) {
	out := map[int]json.RawMessage{}
	if len(raw) == 0 || string(raw) == "null" {
		return out, nil
	}

	switch raw[0] {
	case '[':
		var arr []json.RawMessage
		if err := json.Unmarshal(raw, &arr); err != nil {
			return nil, err
		}
		for i, child := range arr {
			if len(child) > 0 && string(child) != "null" {
				out[i] = child
			}
		}
	case '{':
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(raw, &obj); err != nil {
			return nil, err
		}
		for k, child := range obj {
			n, err := strconv.Atoi(k)
			if err != nil {
				continue
			}
			out[n] = child
		}
	default:
		return nil, fmt.Errorf("unexpected node %q", string(raw[:1]))
	}
	return out, nil
}
