package temporal

import (
	"context"
	"os/exec"
	"sort"
	"strings"

	"ckg/internal/kg"
	"ckg/internal/logging"
)

// commitMarker prefixes each commit hash in the git log output so the
// parser can tell hashes apart from file paths.
const commitMarker = "~commit~"

// maxFilesPerCommit skips bulk commits (vendoring, formatting sweeps)
// that would otherwise produce a quadratic blowup of weak pairs.
const maxFilesPerCommit = 50

// Miner derives co-change pairs from git history.
type Miner struct {
	workspace string
	logger    *logging.Logger
}

// NewMiner creates a co-change miner rooted at the given workspace.
func NewMiner(workspace string, logger *logging.Logger) *Miner {
	return &Miner{
		workspace: workspace,
		logger:    logger,
	}
}

// BuildTemporalGraph mines up to maxCommits commits and returns the
// co-change edge set. Each edge pairs two files that appeared in the
// same commit at least once.
func (m *Miner) BuildTemporalGraph(ctx context.Context, maxCommits int) (*kg.TemporalGraph, error) {
	if maxCommits <= 0 {
		maxCommits = 500
	}

	output, err := m.executeGit(ctx,
		"log",
		"-n", itoa(maxCommits),
		"--name-only",
		"--format="+commitMarker+"%H",
	)
	if err != nil {
		return nil, err
	}

	commits := ParseLog(output)

	m.logger.Debug("Mined commit history", map[string]interface{}{
		"workspace":  m.workspace,
		"maxCommits": maxCommits,
		"commits":    len(commits),
	})

	return &kg.TemporalGraph{Edges: BuildEdges(commits)}, nil
}

// ParseLog splits git log --name-only output into per-commit file lists.
// Empty commits (merges with no file changes) are dropped.
func ParseLog(output string) [][]string {
	commits := make([][]string, 0)
	var current []string

	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, commitMarker) {
			if len(current) > 0 {
				commits = append(commits, current)
			}
			current = nil
			continue
		}
		current = append(current, line)
	}
	if len(current) > 0 {
		commits = append(commits, current)
	}

	return commits
}

// BuildEdges converts per-commit file lists into co-change edges.
// For each pair, strength = changeCount / totalChanges, where
// totalChanges is the larger of the two files' individual commit
// counts. Pairs are ordered fileA < fileB and the result is sorted
// by strength descending, then lexicographically.
func BuildEdges(commits [][]string) []kg.TemporalEdge {
	fileCounts := make(map[string]int)
	pairCounts := make(map[[2]string]int)

	for _, files := range commits {
		if len(files) > maxFilesPerCommit {
			continue
		}
		seen := make(map[string]bool, len(files))
		unique := make([]string, 0, len(files))
		for _, f := range files {
			if !seen[f] {
				seen[f] = true
				unique = append(unique, f)
			}
		}
		sort.Strings(unique)

		for _, f := range unique {
			fileCounts[f]++
		}
		for i := 0; i < len(unique); i++ {
			for j := i + 1; j < len(unique); j++ {
				pairCounts[[2]string{unique[i], unique[j]}]++
			}
		}
	}

	edges := make([]kg.TemporalEdge, 0, len(pairCounts))
	for pair, count := range pairCounts {
		total := fileCounts[pair[0]]
		if fileCounts[pair[1]] > total {
			total = fileCounts[pair[1]]
		}
		if total == 0 {
			continue
		}
		edges = append(edges, kg.TemporalEdge{
			FileA:        pair[0],
			FileB:        pair[1],
			Strength:     float64(count) / float64(total),
			ChangeCount:  count,
			TotalChanges: total,
		})
	}

	sort.Slice(edges, func(i, j int) bool {
		if edges[i].Strength != edges[j].Strength {
			return edges[i].Strength > edges[j].Strength
		}
		if edges[i].FileA != edges[j].FileA {
			return edges[i].FileA < edges[j].FileA
		}
		return edges[i].FileB < edges[j].FileB
	})

	return edges
}

// executeGit runs a git command in the workspace and returns stdout.
func (m *Miner) executeGit(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = m.workspace

	output, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			if strings.Contains(string(exitErr.Stderr), "does not have any commits") {
				return "", nil
			}
		}
		return "", err
	}

	return string(output), nil
}

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	neg := i < 0
	if neg {
		i = -i
	}
	var buf [20]byte
	pos := len(buf)
	for i > 0 {
		pos--
		buf[pos] = byte('0' + i%10)
		i /= 10
	}
	if neg {
		pos--
		buf[pos] = '-'
	}
	return string(buf[pos:])
}
