package main

import (
	"log"

	"github.com/google/uuid"
)

// streamEvent is pushed to websocket subscribers whenever the server
// generates or serves something worth showing on a live map.
type streamEvent struct {
	ID     string `json:"id"`
	Action string `json:"action"`
	Data   any    `json:"data"`
}

func newStreamEvent(action string, data any) streamEvent {
	return streamEvent{
		ID:     uuid.NewString(),
		Action: action,
		Data:   data,
	}
}

type streamEventRouter struct {
	connect    chan chan streamEvent
	disconnect chan chan streamEvent
	events     chan streamEvent
}

var (
	globalEventRouter = newStreamEventRouter()
)

func newStreamEventRouter() *streamEventRouter {
	return &streamEventRouter{
		connect:    make(chan chan streamEvent, 16),
		disconnect: make(chan chan streamEvent, 16),
		events:     make(chan streamEvent, 256),
	}
}

func (router *streamEventRouter) Run(exitchan <-chan struct{}) {
	clients := map[chan streamEvent]bool{}
	for {
		select {
		case <-exitchan:
			for c := range clients {
				close(c)
			}
			return
		case c := <-router.connect:
			clients[c] = true
		case c := <-router.disconnect:
			delete(clients, c)
			close(c)
		case e := <-router.events:
			for c := range clients {
				select {
				case c <- e:
				default:
					log.Printf("Event %v dropped!", e.Action)
				}
			}
		}
	}
}

func (router *streamEventRouter) Connect() chan streamEvent {
	c := make(chan streamEvent, 256)
	router.connect <- c
	return c
}

func (router *streamEventRouter) Disconnect(c chan streamEvent) {
	router.disconnect <- c
}

func (router *streamEventRouter) Broadcast(e streamEvent) {
	router.events <- e
}
