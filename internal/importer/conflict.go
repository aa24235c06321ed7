package importer

import "fmt"

// ParsePolicy converts a user-supplied policy string into a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case PolicySkip:
		return PolicySkip, nil
	case PolicyReplace:
		return PolicyReplace, nil
	case PolicyRename:
		return PolicyRename, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
	}
}

// DetectConflicts reports each incoming server whose name is already in the
// existing registry name set. The reported action is the neutral default;
// the real action is assigned when a policy is applied. Entries are kept in
// batch order, duplicates included, because the list is a user-facing
// report.
func DetectConflicts(servers []ParsedServer, existing []string) []ConflictInfo {
	taken := nameSet(existing)

	var conflicts []ConflictInfo
	for _, server := range servers {
		if taken[server.Name] {
			conflicts = append(conflicts, ConflictInfo{
				ServerName: server.Name,
				Action:     PolicySkip,
			})
		}
	}
	return conflicts
}

// ResolveConflicts applies a resolution policy and returns the final server
// list for the caller to persist. The input slice is never mutated.
//
//   - skip: colliding servers are dropped, batch order preserved
//   - replace: the list passes through unchanged; the caller's merge
//     overwrites existing entries of the same name
//   - rename: colliding servers get the first _1, _2, ... suffix that
//     matches neither the existing set nor a name already assigned during
//     this pass
func ResolveConflicts(servers []ParsedServer, existing []string, policy Policy) ([]ParsedServer, error) {
	taken := nameSet(existing)

	switch policy {
	case PolicySkip:
		out := make([]ParsedServer, 0, len(servers))
		for _, server := range servers {
			if !taken[server.Name] {
				out = append(out, server)
			}
		}
		return out, nil

	case PolicyReplace:
		out := make([]ParsedServer, len(servers))
		copy(out, servers)
		return out, nil

	case PolicyRename:
		assigned := make(map[string]bool)
		out := make([]ParsedServer, 0, len(servers))
		for _, server := range servers {
			if !taken[server.Name] {
				out = append(out, server)
				continue
			}
			var name string
			for i := 1; ; i++ {
				name = fmt.Sprintf("%s_%d", server.Name, i)
				if !taken[name] && !assigned[name] {
					break
				}
			}
			assigned[name] = true
			out = append(out, server.WithName(name))
		}
		return out, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPolicy, policy)
	}
}

func nameSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, name := range names {
		set[name] = true
	}
	return set
}
