// Package types defines the shared data structures for the SagaCraft engine.
// This package contains only type definitions — no logic beyond trivial
// accessors that keep invariants local to the data.
package types

// Action is the closed vocabulary of canonical command actions produced by
// the parser and dispatched by the engine.
type Action string

const (
	ActionNone       Action = ""
	ActionMove       Action = "move"
	ActionLook       Action = "look"
	ActionExamine    Action = "examine"
	ActionSearch     Action = "search"
	ActionGet        Action = "get"
	ActionDrop       Action = "drop"
	ActionPut        Action = "put"
	ActionInventory  Action = "inventory"
	ActionStatus     Action = "status"
	ActionEquip      Action = "equip"
	ActionUnequip    Action = "unequip"
	ActionAttack     Action = "attack"
	ActionFlee       Action = "flee"
	ActionTalk       Action = "talk"
	ActionGive       Action = "give"
	ActionTrade      Action = "trade"
	ActionBuy        Action = "buy"
	ActionSell       Action = "sell"
	ActionUse        Action = "use"
	ActionOpen       Action = "open"
	ActionClose      Action = "close"
	ActionRead       Action = "read"
	ActionEat        Action = "eat"
	ActionDrink      Action = "drink"
	ActionQuests     Action = "quests"
	ActionParty      Action = "party"
	ActionRecruit    Action = "recruit"
	ActionDismiss    Action = "dismiss"
	ActionPartyOrder Action = "party_order"
	ActionGather     Action = "gather"
	ActionQuestion   Action = "question"
	ActionHelp       Action = "help"
	ActionQuit       Action = "quit"
)

// Intent is the parsed representation of one line of player input.
// All slots are optional; Action is ActionNone only for empty input.
type Intent struct {
	Action       Action
	Target       string
	Object       string
	Container    string
	Topic        string
	Instrument   string
	Direction    string
	Companion    string
	Order        string
	Recipient    string
	QuestionType string // "question", "ability_check", "existence_check"
	Text         string // raw sentence, set for questions
}

// Friendliness is an NPC's disposition, gating recruitment and default
// combat behavior.
type Friendliness string

const (
	Friendly Friendliness = "friendly"
	Neutral  Friendliness = "neutral"
	Hostile  Friendliness = "hostile"
)

// ItemType categorizes items for the consumption and equipment handlers.
type ItemType string

const (
	ItemNormal    ItemType = "normal"
	ItemWeapon    ItemType = "weapon"
	ItemArmor     ItemType = "armor"
	ItemTreasure  ItemType = "treasure"
	ItemReadable  ItemType = "readable"
	ItemEdible    ItemType = "edible"
	ItemDrinkable ItemType = "drinkable"
	ItemContainer ItemType = "container"
)

// Item locations use the shared id space: 0 is the player's inventory, a
// positive value is a room id or the id of the monster carrying it.
const LocInventory = 0

// RemovedRoom is the sentinel room id meaning "out of the explorable
// world" — used for recruited companions' former NPC records.
const RemovedRoom = -999

// Room is a location in the world graph. Exits map canonical direction
// strings to target room ids; 0 means the exit leads nowhere.
type Room struct {
	ID          int            `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Exits       map[string]int `json:"exits"`
	IsDark      bool           `json:"is_dark"`
}

// Exit returns the target room id for a direction, or 0 if there is none.
func (r *Room) Exit(direction string) int {
	return r.Exits[direction]
}

// Item is a world object. Weapon damage is WeaponDice rolls of a
// WeaponSides-sided die.
type Item struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Type        ItemType `json:"type"`
	Weight      int      `json:"weight"`
	Value       int      `json:"value"`
	IsWeapon    bool     `json:"is_weapon"`
	WeaponType  int      `json:"weapon_type"`
	WeaponDice  int      `json:"weapon_dice"`
	WeaponSides int      `json:"weapon_sides"`
	IsArmor     bool     `json:"is_armor"`
	ArmorValue  int      `json:"armor_value"`
	IsTakeable  bool     `json:"is_takeable"`
	IsWearable  bool     `json:"is_wearable"`
	IsLight     bool     `json:"is_light_source"`
	HealAmount  int      `json:"heal_amount"`
	Location    int      `json:"location"`
}

// Monster is a monster or NPC. Hardiness is max health; Health is current.
type Monster struct {
	ID           int          `json:"id"`
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	RoomID       int          `json:"room_id"`
	Hardiness    int          `json:"hardiness"`
	Agility      int          `json:"agility"`
	Friendliness Friendliness `json:"friendliness"`
	Courage      int          `json:"courage"`
	WeaponID     int          `json:"weapon_id"`
	ArmorWorn    int          `json:"armor_worn"`
	Gold         int          `json:"gold"`
	CanTrade     bool         `json:"can_trade"`
	DialogueID   int          `json:"dialogue_id"`
	Inventory    []int        `json:"inventory"`
	Health       int          `json:"current_health"`
	Dead         bool         `json:"is_dead"`
}

// Player is the player character. Flags holds arbitrary booleans set by
// mod scripts and dialogue effects.
type Player struct {
	Name            string          `json:"name"`
	Hardiness       int             `json:"hardiness"`
	Agility         int             `json:"agility"`
	Charisma        int             `json:"charisma"`
	Gold            int             `json:"gold"`
	CurrentRoom     int             `json:"current_room"`
	Health          int             `json:"current_health"`
	Inventory       []int           `json:"inventory"`
	EquippedWeapon  int             `json:"equipped_weapon"`
	EquippedArmor   int             `json:"equipped_armor"`
	Experience      int             `json:"experience"`
	Level           int             `json:"level"`
	KnownSpells     []string        `json:"known_spells"`
	ActiveQuests    []int           `json:"active_quests"`
	CompletedQuests []int           `json:"completed_quests"`
	Flags           map[string]bool `json:"flags"`
}

// Stance is a companion's combat/behavior stance.
type Stance string

const (
	StanceAggressive Stance = "aggressive"
	StanceDefensive  Stance = "defensive"
	StanceSupport    Stance = "support"
	StancePassive    Stance = "passive"
	StanceFollow     Stance = "follow"
)

// Role determines a companion's derived combat stats.
type Role string

const (
	RoleFighter Role = "fighter"
	RoleMage    Role = "mage"
	RoleHealer  Role = "healer"
	RoleRogue   Role = "rogue"
)

// Companion is a recruited NPC following the player. Loyalty is clamped to
// [0,100]; Health to [0,MaxHealth].
type Companion struct {
	NPCID       int    `json:"npc_id"`
	Name        string `json:"name"`
	Role        Role   `json:"role"`
	Loyalty     int    `json:"loyalty"`
	Health      int    `json:"current_health"`
	MaxHealth   int    `json:"max_health"`
	Hardiness   int    `json:"hardiness"`
	Agility     int    `json:"agility"`
	AttackBonus int    `json:"attack_bonus"`
	Stance      Stance `json:"stance"`
	Waiting     bool   `json:"is_waiting"`
	WaitRoom    int    `json:"wait_location"`
}

// Alive reports whether the companion can still act.
func (c *Companion) Alive() bool { return c.Health > 0 }

// PuzzleType distinguishes puzzle mechanics.
type PuzzleType string

const (
	PuzzleLockedDoor   PuzzleType = "locked_door"
	PuzzleHiddenObject PuzzleType = "hidden_object"
)

// Puzzle is an obstacle in a room. Locked-door puzzles block ExitDirection
// until solved; hidden-object puzzles reveal RevealsItems on search.
type Puzzle struct {
	ID            int        `json:"id"`
	Type          PuzzleType `json:"type"`
	RoomID        int        `json:"room_id"`
	Description   string     `json:"description"`
	ExitDirection string     `json:"exit_direction"`
	RequiredItem  int        `json:"required_item"`
	RevealsItems  []int      `json:"reveals_items"`
	SuccessMsg    string     `json:"success_message"`
	FailureMsg    string     `json:"failure_message"`
	Solved        bool       `json:"is_solved"`
}

// DialogueTopic is one conversation topic for an NPC.
type DialogueTopic struct {
	Keyword         string `json:"keyword"`
	Response        string `json:"response"`
	UnlocksQuest    int    `json:"unlocks_quest"`
	GivesItem       int    `json:"gives_item"`
	RequiresItem    int    `json:"requires_item"`
	OneTimeOnly     bool   `json:"one_time_only"`
	Used            bool   `json:"has_been_used"`
	MakesFriendly   bool   `json:"makes_friendly"`
}

// Dialogue is an NPC's conversation tree, keyed by the NPC's id.
type Dialogue struct {
	NPCID    int             `json:"npc_id"`
	Greeting string          `json:"greeting"`
	Topics   []DialogueTopic `json:"topics"`
	Farewell string          `json:"farewell"`
}

// QuestStatus tracks quest lifecycle.
type QuestStatus string

const (
	QuestNotStarted QuestStatus = "not_started"
	QuestInProgress QuestStatus = "in_progress"
	QuestCompleted  QuestStatus = "completed"
	QuestFailed     QuestStatus = "failed"
)

// QuestObjective is a single countable goal within a quest.
type QuestObjective struct {
	Type        string `json:"type"` // collect_item, kill_monster, reach_room, talk_to_npc
	TargetID    int    `json:"target_id"`
	Quantity    int    `json:"quantity"`
	Progress    int    `json:"current_progress"`
	Description string `json:"description"`
}

// Complete reports whether the objective has met its quantity.
func (o *QuestObjective) Complete() bool { return o.Progress >= o.Quantity }

// Quest is a multi-objective task with rewards.
type Quest struct {
	ID          int              `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	GiverNPC    int              `json:"giver_npc"`
	Objectives  []QuestObjective `json:"objectives"`
	RewardGold  int              `json:"rewards_gold"`
	RewardXP    int              `json:"rewards_experience"`
	RewardItems []int            `json:"rewards_items"`
	Status      QuestStatus      `json:"status"`
}

// Complete reports whether every objective is complete.
func (q *Quest) Complete() bool {
	for i := range q.Objectives {
		if !q.Objectives[i].Complete() {
			return false
		}
	}
	return true
}
