package component

// Tag names the role a spatial query filters on.
type Tag string

const (
	TagPlayer Tag = "Player"
	TagEnemy  Tag = "Enemy"
)

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

type EnemyTag struct{}

var EnemyTagComponent = NewComponent[EnemyTag]()
