package skills

// Skill ids.
const (
	IronBody     = "iron-body"
	XPBoost      = "xp-boost"
	Necromancer  = "necromancer"
	Stealth      = "stealth"
	KeylessDoors = "keyless-doors"
	WaterWalker  = "water-walker"
	LavaWalker   = "lava-walker"
	ExtraHeart   = "extra-heart"
)

// Skill is one catalog entry. NameKey and DescKey are display keys the
// front end resolves to text.
type Skill struct {
	ID      string
	NameKey string
	DescKey string
	Unlock  int // Level at which the skill enters the choice pool
}

// Catalog is the static skill list in display order.
var Catalog = []Skill{
	{ID: WaterWalker, NameKey: "skill.water-walker.name", DescKey: "skill.water-walker.desc", Unlock: 2},
	{ID: IronBody, NameKey: "skill.iron-body.name", DescKey: "skill.iron-body.desc", Unlock: 2},
	{ID: Stealth, NameKey: "skill.stealth.name", DescKey: "skill.stealth.desc", Unlock: 4},
	{ID: XPBoost, NameKey: "skill.xp-boost.name", DescKey: "skill.xp-boost.desc", Unlock: 4},
	{ID: KeylessDoors, NameKey: "skill.keyless-doors.name", DescKey: "skill.keyless-doors.desc", Unlock: 6},
	{ID: ExtraHeart, NameKey: "skill.extra-heart.name", DescKey: "skill.extra-heart.desc", Unlock: 6},
	{ID: LavaWalker, NameKey: "skill.lava-walker.name", DescKey: "skill.lava-walker.desc", Unlock: 8},
	{ID: Necromancer, NameKey: "skill.necromancer.name", DescKey: "skill.necromancer.desc", Unlock: 8},
}

// Lookup returns a catalog entry by id.
func Lookup(id string) (Skill, bool) {
	for _, s := range Catalog {
		if s.ID == id {
			return s, true
		}
	}
	return Skill{}, false
}

// UnlocksAt returns the ids that unlock exactly at level, in catalog order.
func UnlocksAt(level int) []string {
	var ids []string
	for _, s := range Catalog {
		if s.Unlock == level {
			ids = append(ids, s.ID)
		}
	}
	return ids
}
