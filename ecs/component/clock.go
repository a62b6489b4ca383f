package component

// Clock is the simulation clock singleton. DT is the fixed tick length in
// seconds; Tick counts completed ticks.
type Clock struct {
	DT      float64
	Tick    uint64
	Elapsed float64
}

var ClockComponent = NewComponent[Clock]()
