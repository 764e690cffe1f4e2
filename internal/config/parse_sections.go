package config

func parseDiscoverySection(r *sectionReader, b *Batch) {
	r.optionalString("discovery.root", &b.Discovery.Root)
	r.optionalBool("discovery.noGitignore", &b.Discovery.NoGitignore)
	if b.Discovery.Root == "" {
		b.Discovery.Root = "."
	}
}

func parseScriptSections(r *sectionReader, b *Batch) {
	r.optionalString("filter.inline", &b.Filter.Inline)
	r.optionalString("map.inline", &b.Map.Inline)
}

func parseErrorsSection(r *sectionReader, b *Batch) {
	r.optionalString("errors.mode", &b.ErrorMode)
	r.optionalInt("workers", &b.Workers)
}

// parseLuaSection extracts lua.timeoutMs and the lua.libs allowlist.
func parseLuaSection(r *sectionReader, b *Batch) {
	r.optionalInt("lua.timeoutMs", &b.Lua.TimeoutMs)
	r.optionalBool("lua.libs.base", &b.Lua.Libs.Base)
	r.optionalBool("lua.libs.table", &b.Lua.Libs.Table)
	r.optionalBool("lua.libs.string", &b.Lua.Libs.String)
	r.optionalBool("lua.libs.math", &b.Lua.Libs.Math)
}

func parseOutputSection(r *sectionReader, b *Batch) {
	r.optionalString("output.format", &b.Output.Format)
	r.optionalBool("output.pretty", &b.Output.Pretty)
}
