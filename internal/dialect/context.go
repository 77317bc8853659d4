package dialect

// Context carries the active dialect through every legality query.
// It is read-only for the duration of a check.
type Context struct {
	Lang Lang
}

// NewContext returns a context with l active.
func NewContext(l Lang) *Context {
	return &Context{Lang: l}
}

// Is reports whether the active dialect belongs to s.
func (c *Context) Is(s Set) bool {
	return s.Contains(c.Lang)
}

// IsC reports whether the active dialect is a C dialect.
func (c *Context) IsC() bool { return c.Lang.IsC() }

// IsCPP reports whether the active dialect is a C++ dialect.
func (c *Context) IsCPP() bool { return c.Lang.IsCPP() }

// Family returns AnyC or AnyCPP for the active dialect.
func (c *Context) Family() Set {
	if c.IsC() {
		return AnyC
	}
	return AnyCPP
}

// Which explains why something legal only in legal is not available in the
// active dialect, as a phrase with a leading space: " unless C++11",
// " in C", " until C99" or " since C++17". It returns "" when the active
// dialect already satisfies legal.
func (c *Context) Which(legal Set) string {
	legal = legal.Std()
	if legal == None || c.Is(legal) {
		return ""
	}
	if legal&(legal-1) == 0 {
		if Lang(legal) == c.Lang.Std() {
			return ""
		}
		return " unless " + Lang(legal).Name()
	}
	legal &= c.Family()
	if legal == None {
		if c.IsC() {
			return " in C"
		}
		return " in C++"
	}
	oldest := legal.Oldest()
	if c.Lang.Std() < oldest {
		return " until " + oldest.Name()
	}
	if std := c.Lang.Std(); std < legal.Newest().Std() {
		// активный диалект в дыре множества: называем ближайший разрешённый
		return " until " + (legal &^ Set(std<<1-1)).Oldest().Name()
	}
	// newest is the last dialect where it is legal; name the first one where it
	// is not. Past C23 and C++23 there is no such dialect.
	if name := (legal.Newest() << 1).Name(); name != "" {
		return " since " + name
	}
	return " unless " + oldest.Name()
}
