package domain

type KpiInput struct {
	Current  Float `json:"current"`
	Previous Float `json:"previous"`
}

type KpiResult struct {
	Current  Float `json:"current"`
	Previous Float `json:"previous"`
	Growth   Float `json:"growth"`
}
