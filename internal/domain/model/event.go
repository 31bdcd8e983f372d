package model

import "strings"

// InboundEvent is the transport-neutral shape of one inbound chat update.
// Username, FirstName and Text are optional; empty string means absent.
type InboundEvent struct {
	ChatID    int64
	UserID    int64
	Username  string
	FirstName string
	MessageID int64
	Text      string
}

// RouteKind classifies an inbound event.
type RouteKind int

const (
	RoutePlainMessage RouteKind = iota
	RouteCommand
)

// Route is the result of classifying an event. Command holds the bare
// command name (lowercase, without the leading slash or @bot suffix) when
// Kind is RouteCommand.
type Route struct {
	Kind    RouteKind
	Command string
}

// Classify decides whether an event is command-shaped or a plain message.
// Anything whose text starts with "/" is a command; "/start@SomeBot arg"
// classifies as command "start".
func Classify(ev InboundEvent) Route {
	if !strings.HasPrefix(ev.Text, "/") {
		return Route{Kind: RoutePlainMessage}
	}
	name := strings.Fields(ev.Text)[0]
	name = strings.TrimPrefix(name, "/")
	if at := strings.IndexByte(name, '@'); at >= 0 {
		name = name[:at]
	}
	return Route{Kind: RouteCommand, Command: strings.ToLower(name)}
}
