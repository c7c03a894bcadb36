package cache

// AnalysisKey is the cache key holding the aggregate analysis of a mode
func AnalysisKey(mode string) string {
	return "analysis:" + mode
}

// GenerationKey holds a counter bumped whenever the evaluations of a mode change.
// Cached analyses record the generation they were computed at.
func GenerationKey(mode string) string {
	return "analysis-gen:" + mode
}
