package event

// Api
type ApiEvent struct {
	Result chan interface{}
	Data   interface{}
}

// ApiEventStatsData asks the effect loop for an apimodel.Stats.
type ApiEventStatsData struct{}
