package domain

const MailTypeSimulationCompleted = "simulation_completed"

type MailMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

type SimulationCompletedMailData struct {
	JobID                string  `json:"jobID"`
	Status               string  `json:"status"`
	TargetZoneCount      int     `json:"targetZoneCount"`
	SwarmFitness         float64 `json:"swarmFitness"`
	FireflyFitness       float64 `json:"fireflyFitness"`
	SwarmExecutionTime   float64 `json:"swarmExecutionTime"`
	FireflyExecutionTime float64 `json:"fireflyExecutionTime"`
	Error                string  `json:"error,omitempty"`
}
