package params

// Extend merges src into dest and returns dest. When both sides hold a
// map[string]any for the same key the maps are merged recursively;
// otherwise the src value replaces the dest value. A nil dest is allocated.
func Extend(dest, src map[string]any) map[string]any {
	if dest == nil {
		dest = make(map[string]any, len(src))
	}
	for k, v := range src {
		srcMap, srcIsMap := v.(map[string]any)
		destMap, destIsMap := dest[k].(map[string]any)
		if srcIsMap && destIsMap {
			dest[k] = Extend(destMap, srcMap)
			continue
		}
		dest[k] = v
	}
	return dest
}
