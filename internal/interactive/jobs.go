// Package interactive collects emission jobs from a terminal user.
package interactive

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/mikiera/Life/pkg/squares"
)

// AskJobs prompts for kind, begin and end until the user declines another
// range. A reversed range is accepted as-is; it emits nothing.
func AskJobs(ctx context.Context, driver PromptDriver) ([]squares.Job, error) {
	if driver == nil {
		return nil, fmt.Errorf("interactive: prompt driver is required")
	}

	kinds := squares.Kinds()
	options := make([]string, len(kinds))
	for i, kind := range kinds {
		options[i] = string(kind)
	}

	var jobs []squares.Job
	for {
		idx, err := driver.Select(ctx, SelectConfig{
			Message: "Entry kind",
			Options: options,
			Help:    "map entries leave \"right\" blank; square entries carry an empty event action",
		})
		if err != nil {
			return nil, err
		}
		if idx < 0 || idx >= len(kinds) {
			return nil, fmt.Errorf("interactive: invalid kind selection %d", idx)
		}

		begin, err := askInt(ctx, driver, "First square id", "1")
		if err != nil {
			return nil, err
		}
		end, err := askInt(ctx, driver, "Last square id", strconv.Itoa(begin))
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, squares.Job{Kind: kinds[idx], Range: squares.Range{Begin: begin, End: end}})

		more, err := driver.Confirm(ctx, ConfirmConfig{Message: "Add another range?"})
		if err != nil {
			return nil, err
		}
		if !more {
			return jobs, nil
		}
	}
}

func askInt(ctx context.Context, driver PromptDriver, message, def string) (int, error) {
	raw, err := driver.Input(ctx, InputConfig{
		Message:   message,
		Default:   def,
		Validator: validateInt,
	})
	if err != nil {
		return 0, err
	}
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("interactive: %s: %w", strings.ToLower(message), err)
	}
	return value, nil
}

func validateInt(raw string) error {
	if _, err := strconv.Atoi(strings.TrimSpace(raw)); err != nil {
		return fmt.Errorf("%q is not a whole number", raw)
	}
	return nil
}
