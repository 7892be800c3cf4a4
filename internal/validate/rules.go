package validate

// Rule sets per entity and operation.
var (
	UserCreate = RuleSet{
		{Field: "username", Required: true, Min: 3, Max: 64, Trimmed: true, NoSpaces: true},
		// bcrypt rejects passwords longer than 72 bytes.
		{Field: "password", Required: true, Min: 6, Max: 72, MaxBytes: 72, Trimmed: true},
		{Field: "blog", Required: true, Min: 3, Max: 72},
	}

	PostCreate = RuleSet{
		{Field: "title", Required: true, Min: 3, Max: 64, Trimmed: true},
		{Field: "content", Required: true, Min: 16},
		{Field: "slug", Required: true, Min: 3, Max: 64, Trimmed: true, NoSpaces: true},
	}

	// PostUpdate is applied with CheckPresent.
	PostUpdate = RuleSet{
		{Field: "title", Min: 3, Max: 64, Trimmed: true},
		{Field: "content", Min: 16},
		{Field: "slug", Min: 3, Max: 64, Trimmed: true, NoSpaces: true},
	}

	CommentCreate = RuleSet{
		{Field: "content", Required: true, Min: 3, Max: 300, Trimmed: true},
		{Field: "postId", Required: true},
	}

	CommentUpdate = RuleSet{
		{Field: "content", Required: true, Min: 3, Max: 300, Trimmed: true},
	}
)
