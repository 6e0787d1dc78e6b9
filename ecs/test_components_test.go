package ecs_test

type Body struct {
	Y, VY float32
}

type Gravity struct {
	Accel float32
}

type Score struct {
	Points int
}
