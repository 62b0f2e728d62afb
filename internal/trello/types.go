package trello

// Board is a Trello board as returned by the REST API.
type Board struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Desc     string `json:"desc,omitempty"`
	Closed   bool   `json:"closed"`
	URL      string `json:"url,omitempty"`
	ShortURL string `json:"shortUrl,omitempty"`
}

// List is a column on a board.
type List struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	IDBoard string  `json:"idBoard"`
	Closed  bool    `json:"closed"`
	Pos     float64 `json:"pos,omitempty"`
}

// Card is a card within a list.
type Card struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Desc     string   `json:"desc,omitempty"`
	IDBoard  string   `json:"idBoard"`
	IDList   string   `json:"idList"`
	Closed   bool     `json:"closed"`
	Due      *string  `json:"due,omitempty"`
	URL      string   `json:"url,omitempty"`
	ShortURL string   `json:"shortUrl,omitempty"`
	Labels   []Label  `json:"labels,omitempty"`
	IDLabels []string `json:"idLabels,omitempty"`
}

// Label is a colored board label.
type Label struct {
	ID      string `json:"id"`
	IDBoard string `json:"idBoard"`
	Name    string `json:"name"`
	Color   string `json:"color,omitempty"`
}

// Action is one entry in a board's activity feed.
type Action struct {
	ID            string     `json:"id"`
	Type          string     `json:"type"`
	Date          string     `json:"date"`
	MemberCreator Member     `json:"memberCreator"`
	Data          ActionData `json:"data"`
}

// Member identifies the Trello member behind an action.
type Member struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	FullName string `json:"fullName,omitempty"`
}

// ActionData carries the subjects of an action. Trello varies the shape by
// action type; only the common identifiers are decoded.
type ActionData struct {
	Text  string `json:"text,omitempty"`
	Board *Board `json:"board,omitempty"`
	List  *List  `json:"list,omitempty"`
	Card  *Card  `json:"card,omitempty"`
}
