package main

import (
	"testing"

	"flip7-server/pkg/playable"

	"github.com/stretchr/testify/assert"
)

func Test_payloadFromLine(t *testing.T) {
	a := assert.New(t)
	a.Equal(&playable.PayloadIn{Action: "start"}, payloadFromLine("START\n"))
	a.Equal(&playable.PayloadIn{Action: "draw"}, payloadFromLine("oui\n"))
	a.Equal(&playable.PayloadIn{Action: "draw"}, payloadFromLine(" y "))
	a.Equal(&playable.PayloadIn{Action: "stop"}, payloadFromLine("stop\r\n"))
	a.Equal(&playable.PayloadIn{Action: "say", Subject: "hello there"}, payloadFromLine("hello there\n"))
}
