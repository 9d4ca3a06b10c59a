package sessions

type NoticeKind uint8

const (
	Info NoticeKind = iota
	Error
)

type Notice struct {
	Kind    NoticeKind
	Message string
}

func (n Notice) String() string {
	if n.Kind == Error {
		return "Error: " + n.Message
	}
	return n.Message
}
