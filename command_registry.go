package main

import (
	"fmt"
	"sort"
	"strings"
)

// CommandInfo holds metadata about a command
type CommandInfo struct {
	Name        string   // Primary command name
	Aliases     []string // Alternative names for the command
	Description string   // Short description of what the command does
	Usage       string   // Usage syntax (e.g., "help [command]")
}

// CommandRegistry manages commands with their metadata
type CommandRegistry[T any] struct {
	commands map[string]T           // Command name -> function
	info     map[string]CommandInfo // Command name -> metadata
	aliases  map[string]string      // Alias -> primary command name
}

func NewCommandRegistry[T any]() *CommandRegistry[T] {
	return &CommandRegistry[T]{
		commands: make(map[string]T),
		info:     make(map[string]CommandInfo),
		aliases:  make(map[string]string),
	}
}

// Register adds a command with its metadata to the registry
func (r *CommandRegistry[T]) Register(name string, fn T, info CommandInfo) {
	if info.Name == "" {
		info.Name = name
	}
	r.commands[name] = fn
	r.info[name] = info

	for _, alias := range info.Aliases {
		r.commands[alias] = fn
		r.aliases[alias] = name
	}
}

// Lookup finds a command by name or alias
func (r *CommandRegistry[T]) Lookup(name string) (T, bool) {
	fn, ok := r.commands[name]
	return fn, ok
}

// GetCommandInfo returns the metadata for a command (by name or alias)
func (r *CommandRegistry[T]) GetCommandInfo(name string) (CommandInfo, bool) {
	if primaryName, isAlias := r.aliases[name]; isAlias {
		name = primaryName
	}
	info, exists := r.info[name]
	return info, exists
}

// GetCommandNames returns all primary command names (no aliases)
func (r *CommandRegistry[T]) GetCommandNames() []string {
	var names []string
	for name := range r.info {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SuggestCommand returns command suggestions for a typo using simple fuzzy matching
func (r *CommandRegistry[T]) SuggestCommand(input string) []string {
	input = strings.ToLower(input)
	var suggestions []string

	// First pass: exact prefix matches
	for name := range r.info {
		if strings.HasPrefix(strings.ToLower(name), input) {
			suggestions = append(suggestions, name)
		}
	}

	// Second pass: similar commands
	if len(suggestions) == 0 {
		for name := range r.info {
			if levenshteinDistance(input, strings.ToLower(name)) <= 2 {
				suggestions = append(suggestions, name)
			}
		}
	}

	sort.Strings(suggestions)
	return suggestions
}

// FormatCommandHelp returns a one line summary that fits the message line
func (r *CommandRegistry[T]) FormatCommandHelp(name string) string {
	info, exists := r.GetCommandInfo(name)
	if !exists {
		return fmt.Sprintf("Command '%s' not found", name)
	}

	var help strings.Builder
	help.WriteString(":" + info.Name)
	if len(info.Aliases) > 0 {
		fmt.Fprintf(&help, " (%s)", strings.Join(info.Aliases, ", "))
	}
	if info.Usage != "" && info.Usage != info.Name {
		fmt.Fprintf(&help, " usage: %s", info.Usage)
	}
	if info.Description != "" {
		help.WriteString(" - " + info.Description)
	}
	return help.String()
}

// Simple Levenshtein distance calculation for command suggestions
func levenshteinDistance(s1, s2 string) int {
	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}

	matrix := make([][]int, len(s1)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(s2)+1)
		matrix[i][0] = i
	}

	for j := 0; j <= len(s2); j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= len(s1); i++ {
		for j := 1; j <= len(s2); j++ {
			cost := 0
			if s1[i-1] != s2[j-1] {
				cost = 1
			}

			matrix[i][j] = min(
				matrix[i-1][j]+1,      // deletion
				matrix[i][j-1]+1,      // insertion
				matrix[i-1][j-1]+cost, // substitution
			)
		}
	}

	return matrix[len(s1)][len(s2)]
}
