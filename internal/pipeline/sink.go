package pipeline

// ChannelSink forwards events into a channel. Channel sends serialize
// concurrent emitters, which is what makes it safe for parallel workers.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}
