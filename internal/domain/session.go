package domain

// Session is the resolved caller identity passed explicitly into service
// calls. There is no ambient global session state; handlers build one from
// the request and thread it through.
type Session struct {
	UserId        string
	Username      string
	WalletAddress string
	Admin         bool
}

// Anonymous is the session used for unauthenticated reads.
var Anonymous = Session{}
