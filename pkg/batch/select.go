package batch

// SelectJobs keeps the jobs whose name is in names, preserving file order. Blank names
// are ignored and an empty selection keeps every job. The second result lists selector
// names that matched no job.
func SelectJobs(jobs []Job, names []string) ([]Job, []string) {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		if n != "" {
			set[n] = false
		}
	}
	if len(set) == 0 {
		return jobs, nil
	}

	selected := make([]Job, 0, len(jobs))
	for _, j := range jobs {
		if _, ok := set[j.JobName]; ok {
			selected = append(selected, j)
			set[j.JobName] = true
		}
	}

	var unmatched []string
	for _, n := range names {
		if matched, ok := set[n]; ok && !matched {
			unmatched = append(unmatched, n)
			delete(set, n)
		}
	}
	return selected, unmatched
}
