package importer

// Report bundles the outcome of one pipeline run: extraction, validation,
// and conflict detection, plus the resolved server list once a policy has
// been applied.
type Report struct {
	Parse      ParseResult      `json:"parse"`
	Validation ValidationResult `json:"validation"`
	Conflicts  []ConflictInfo   `json:"conflicts"`
	Resolved   []ParsedServer   `json:"resolved,omitempty"`
}

// Run executes the pipeline up to the point where a human reviews the
// results: text is split into blocks, servers are extracted and validated,
// and incoming names are checked against the existing registry names.
// Resolution happens separately, once a policy has been chosen.
func Run(text string, existing []string) *Report {
	parse := ParseServers(text)
	return &Report{
		Parse:      parse,
		Validation: Validate(parse.Servers),
		Conflicts:  DetectConflicts(parse.Servers, existing),
	}
}

// Resolve applies the chosen policy to the extracted servers and records
// the final list on the report. Conflict entries are updated to carry the
// applied action.
func (r *Report) Resolve(existing []string, policy Policy) error {
	resolved, err := ResolveConflicts(r.Parse.Servers, existing, policy)
	if err != nil {
		return err
	}

	for i := range r.Conflicts {
		r.Conflicts[i].Action = policy
	}
	r.Resolved = resolved
	return nil
}

// HasServers reports whether extraction produced anything importable.
func (r *Report) HasServers() bool {
	return len(r.Parse.Servers) > 0
}
