package content

// Kind identifies a content collection.
type Kind string

const (
	KindPost    Kind = "post"
	KindProject Kind = "project"
)

// Kinds returns every known kind.
func Kinds() []Kind {
	return []Kind{KindPost, KindProject}
}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	return k == KindPost || k == KindProject
}

func (k Kind) String() string {
	return string(k)
}

// defaultDirs maps kinds to directories relative to the content root.
var defaultDirs = map[Kind]string{
	KindPost:    "blog/posts",
	KindProject: "work/projects",
}
