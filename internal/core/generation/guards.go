package generation

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Kind    ErrorKind
	Reason  string
}

// Error converts the guard result to an error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return Errorf(r.Kind, "%s", r.Reason)
}

func allow() GuardResult {
	return GuardResult{Allowed: true}
}

func deny(kind ErrorKind, reason string) GuardResult {
	return GuardResult{Kind: kind, Reason: reason}
}

// GenerateGuardContext holds pre-fetched facts about a generation request.
type GenerateGuardContext struct {
	GeneratorType string
	Command       string

	// Required maps each required argument name to the value supplied for it.
	Required map[string]string
	// RequiredOrder fixes the order in which missing arguments are reported.
	RequiredOrder []string

	RequiresProject    bool
	ProjectInitialized bool

	RequiresDomain bool
	DomainName     string
	DomainExists   bool

	// CreatesProject is set for project generation, which refuses an existing
	// directory unless forced.
	CreatesProject   bool
	ProjectDir       string
	ProjectDirExists bool
	Force            bool
}

// CanGenerate evaluates whether generation may start. Checks run in order: required
// arguments, project state, then dependencies.
func CanGenerate(ctx GenerateGuardContext) GuardResult {
	for _, name := range ctx.RequiredOrder {
		if ctx.Required[name] == "" {
			return deny(MissingRequiredField, "missing required argument: "+name)
		}
	}

	if ctx.CreatesProject && ctx.ProjectDirExists && !ctx.Force {
		return deny(PreconditionFailed,
			"Directory '"+ctx.ProjectDir+"' already exists. Use --force to overwrite.")
	}

	if ctx.RequiresProject && !ctx.ProjectInitialized {
		return deny(PreconditionFailed,
			"This command must be run inside an initialized project (package.json and src/ are required). Run 'express-ts-gen new <project-name>' first.")
	}

	if ctx.RequiresDomain && !ctx.DomainExists {
		return deny(DependencyNotFound,
			"Domain '"+ctx.DomainName+"' does not exist. Please generate the domain first using 'generate:domain "+ctx.DomainName+"'.")
	}

	return allow()
}
