package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"squish"
)

// decideConflict is the DecideFunc wired into the core's path conflict
// resolver. The --yes/--no policies bypass the prompt entirely.
func decideConflict(path string, policy squish.QuestionPolicy, action squish.QuestionAction) (squish.ConflictDecision, error) {
	switch policy {
	case squish.PolicyAlwaysYes:
		return squish.DecisionOverwrite, nil
	case squish.PolicyAlwaysNo:
		return squish.DecisionCancel, nil
	}

	verb := "compress to"
	if action == squish.ActionDecompress {
		verb = "decompress into"
	}
	fmt.Fprintf(os.Stderr, "'%s' already exists, cannot %s it. [(o)verwrite/(r)ename/(m)erge/(c)ancel] ", path, verb)

	scanner := bufio.NewScanner(os.Stdin)
	if !scanner.Scan() {
		// EOF on stdin means nobody can answer; cancel.
		return squish.DecisionCancel, scanner.Err()
	}
	switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
	case "o", "overwrite", "y", "yes":
		return squish.DecisionOverwrite, nil
	case "r", "rename":
		return squish.DecisionRename, nil
	case "m", "merge":
		return squish.DecisionMerge, nil
	default:
		return squish.DecisionCancel, nil
	}
}
