package github

// Profile is the subset of GET /users/{username} that ghv renders.
type Profile struct {
	Login       string `json:"login" yaml:"login"`
	Name        string `json:"name,omitempty" yaml:"name,omitempty"`
	Bio         string `json:"bio,omitempty" yaml:"bio,omitempty"`
	Location    string `json:"location,omitempty" yaml:"location,omitempty"`
	AvatarURL   string `json:"avatar_url" yaml:"avatar_url"`
	Followers   int    `json:"followers" yaml:"followers"`
	Following   int    `json:"following" yaml:"following"`
	PublicRepos int    `json:"public_repos" yaml:"public_repos"`
	HTMLURL     string `json:"html_url" yaml:"html_url"`
	ReposURL    string `json:"repos_url" yaml:"repos_url"`

	// Message is set when the API answered 2xx with an error body.
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
}

// DisplayName returns the name, falling back to the login.
func (p *Profile) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	return p.Login
}

// Repository is the subset of a repository list entry that ghv renders.
// Owner holds the owner's login only; an empty Language means unknown.
type Repository struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	HTMLURL     string `json:"html_url" yaml:"html_url"`
	Owner       string `json:"owner" yaml:"owner"`
	Language    string `json:"language,omitempty" yaml:"language,omitempty"`
	Stars       int    `json:"stars" yaml:"stars"`
	Forks       int    `json:"forks" yaml:"forks"`
	Fork        bool   `json:"fork" yaml:"fork"`
}

// FullName returns "owner/name".
func (r Repository) FullName() string {
	return r.Owner + "/" + r.Name
}

// apiRepository mirrors the wire format, where owner is an object.
type apiRepository struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	HTMLURL     string  `json:"html_url"`
	Owner       struct {
		Login string `json:"login"`
	} `json:"owner"`
	Language        *string `json:"language"`
	StargazersCount int     `json:"stargazers_count"`
	ForksCount      int     `json:"forks_count"`
	Fork            bool    `json:"fork"`
}

func (a apiRepository) normalize() Repository {
	r := Repository{
		Name:    a.Name,
		HTMLURL: a.HTMLURL,
		Owner:   a.Owner.Login,
		Stars:   a.StargazersCount,
		Forks:   a.ForksCount,
		Fork:    a.Fork,
	}
	if a.Description != nil {
		r.Description = *a.Description
	}
	if a.Language != nil {
		r.Language = *a.Language
	}
	return r
}

// apiProfile mirrors the wire format, where text fields may be null.
type apiProfile struct {
	Login       string  `json:"login"`
	Name        *string `json:"name"`
	Bio         *string `json:"bio"`
	Location    *string `json:"location"`
	AvatarURL   string  `json:"avatar_url"`
	Followers   int     `json:"followers"`
	Following   int     `json:"following"`
	PublicRepos int     `json:"public_repos"`
	HTMLURL     string  `json:"html_url"`
	ReposURL    string  `json:"repos_url"`
	Message     string  `json:"message"`
}

func (a apiProfile) normalize() *Profile {
	deref := func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	}
	return &Profile{
		Login:       a.Login,
		Name:        deref(a.Name),
		Bio:         deref(a.Bio),
		Location:    deref(a.Location),
		AvatarURL:   a.AvatarURL,
		Followers:   a.Followers,
		Following:   a.Following,
		PublicRepos: a.PublicRepos,
		HTMLURL:     a.HTMLURL,
		ReposURL:    a.ReposURL,
		Message:     a.Message,
	}
}
