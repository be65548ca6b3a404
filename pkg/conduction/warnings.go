package conduction

import "fmt"

// WarningCode classifies a non-fatal pipeline condition
type WarningCode string

const (
	// WarnNoStartAtoms: no middle atom borders another replica in the lower
	// half, so the network has no terminals
	WarnNoStartAtoms WarningCode = "no_start_atoms"
	// WarnUnlabeledTerminal: a start/end pair has an atom that never became a
	// graph node; the pair was dropped
	WarnUnlabeledTerminal WarningCode = "unlabeled_terminal"
	// WarnCyclic: the assembled graph has a directed cycle
	WarnCyclic WarningCode = "cyclic_graph"
	// WarnDisconnectedPair: no directed path joins a start atom to its end atom
	WarnDisconnectedPair WarningCode = "disconnected_pair"
)

// Warning is a condition that leaves a usable but suspect result
type Warning struct {
	Code    WarningCode `json:"code" yaml:"code"`
	Message string      `json:"message" yaml:"message"`
	Atoms   []int       `json:"atoms,omitempty" yaml:"atoms,omitempty"`
}

func (w Warning) String() string {
	if len(w.Atoms) == 0 {
		return fmt.Sprintf("%s: %s", w.Code, w.Message)
	}
	return fmt.Sprintf("%s: %s %v", w.Code, w.Message, w.Atoms)
}

func newWarning(code WarningCode, atoms []int, format string, args ...any) Warning {
	return Warning{Code: code, Message: fmt.Sprintf(format, args...), Atoms: atoms}
}
