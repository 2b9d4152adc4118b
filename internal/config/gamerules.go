package config

import (
	"strconv"
	"sync"
)

// GameRule holds one world's set of vanilla gamerules. Field names mirror
// the vanilla rule names; defaults match vanilla's own.
type GameRule struct {
	AnnounceAdvancements      bool
	BlockExplosionDropDecay   bool
	CommandBlockOutput        bool
	CommandModificationBlockLimit uint32
	DisableElytraMovementCheck bool
	DisableRaids              bool
	DoDaylightCycle           bool
	DoEntityDrops             bool
	DoFireTick                bool
	DoInsomnia                bool
	DoImmediateRespawn        bool
	DoLimitedCrafting         bool
	DoMobLoot                 bool
	DoMobSpawning             bool
	DoPatrolSpawning          bool
	DoTileDrops               bool
	DoTraderSpawning          bool
	DoVinesSpread             bool
	DoWeatherCycle            bool
	DoWardenSpawning          bool
	DrowningDamage            bool
	EnderPearlsVanishOnDeath  bool
	FallDamage                bool
	FireDamage                bool
	ForgiveDeadPlayers        bool
	FreezeDamage              bool
	GlobalSoundEvents         bool
	KeepInventory             bool
	LavaSourceConversion      bool
	LogAdminCommands          bool
	MaxCommandChainLength     uint32
	MaxCommandForkCount       uint32
	MaxEntityCramming         uint32
	MobExplosionDropDecay     bool
	MobGriefing               bool
	NaturalRegeneration       bool
	PlayersNetherPortalCreativeDelay uint32
	PlayersNetherPortalDefaultDelay  uint32
	PlayersSleepingPercentage uint32
	ProjectilesCanBreakBlocks bool
	RandomTickSpeed           uint32
	ReducedDebugInfo          bool
	SendCommandFeedback       bool
	ShowDeathMessages         bool
	SnowAccumulationHeight    uint32
	SpawnChunkRadius          uint32
	SpawnRadius               uint32
	SpectatorsGenerateChunks  bool
	TntExplosionDropDecay     bool
	UniversalAnger            bool
	WaterSourceConversion     bool
}

// DefaultGameRule returns a GameRule set to vanilla's default values.
func DefaultGameRule() GameRule {
	return GameRule{
		AnnounceAdvancements:          true,
		BlockExplosionDropDecay:       true,
		CommandBlockOutput:            true,
		CommandModificationBlockLimit: 32768,
		DisableElytraMovementCheck:    false,
		DisableRaids:                  false,
		DoDaylightCycle:               true,
		DoEntityDrops:                 true,
		DoFireTick:                    true,
		DoInsomnia:                    true,
		DoImmediateRespawn:            false,
		DoLimitedCrafting:             false,
		DoMobLoot:                     true,
		DoMobSpawning:                 true,
		DoPatrolSpawning:              true,
		DoTileDrops:                   true,
		DoTraderSpawning:              true,
		DoVinesSpread:                 true,
		DoWeatherCycle:                true,
		DoWardenSpawning:              true,
		DrowningDamage:                true,
		EnderPearlsVanishOnDeath:      true,
		FallDamage:                    true,
		FireDamage:                    true,
		ForgiveDeadPlayers:            true,
		FreezeDamage:                  true,
		GlobalSoundEvents:             true,
		KeepInventory:                 false,
		LavaSourceConversion:          false,
		LogAdminCommands:              true,
		MaxCommandChainLength:         65536,
		MaxCommandForkCount:           65536,
		MaxEntityCramming:             24,
		MobExplosionDropDecay:         true,
		MobGriefing:                   true,
		NaturalRegeneration:           true,
		PlayersNetherPortalCreativeDelay: 1,
		PlayersNetherPortalDefaultDelay:  80,
		PlayersSleepingPercentage:     100,
		ProjectilesCanBreakBlocks:     true,
		RandomTickSpeed:               3,
		ReducedDebugInfo:              false,
		SendCommandFeedback:           true,
		ShowDeathMessages:             true,
		SnowAccumulationHeight:        1,
		SpawnChunkRadius:              2,
		SpawnRadius:                   10,
		SpectatorsGenerateChunks:      true,
		TntExplosionDropDecay:         false,
		UniversalAnger:                false,
		WaterSourceConversion:         true,
	}
}

// asEntries renders the gamerule set as the string-keyed list the
// GameEvent / CommandsPacket rule-sync wire format uses: every value,
// regardless of underlying type, travels as its string representation.
func (g GameRule) asEntries() []struct {
	Name  string
	Value string
} {
	b := func(v bool) string {
		if v {
			return "true"
		}
		return "false"
	}
	u := func(v uint32) string { return strconv.FormatUint(uint64(v), 10) }

	return []struct {
		Name  string
		Value string
	}{
		{"announceAdvancements", b(g.AnnounceAdvancements)},
		{"blockExplosionDropDecay", b(g.BlockExplosionDropDecay)},
		{"commandBlockOutput", b(g.CommandBlockOutput)},
		{"commandModificationBlockLimit", u(g.CommandModificationBlockLimit)},
		{"disableElytraMovementCheck", b(g.DisableElytraMovementCheck)},
		{"disableRaids", b(g.DisableRaids)},
		{"doDaylightCycle", b(g.DoDaylightCycle)},
		{"doEntityDrops", b(g.DoEntityDrops)},
		{"doFireTick", b(g.DoFireTick)},
		{"doInsomnia", b(g.DoInsomnia)},
		{"doImmediateRespawn", b(g.DoImmediateRespawn)},
		{"doLimitedCrafting", b(g.DoLimitedCrafting)},
		{"doMobLoot", b(g.DoMobLoot)},
		{"doMobSpawning", b(g.DoMobSpawning)},
		{"doPatrolSpawning", b(g.DoPatrolSpawning)},
		{"doTileDrops", b(g.DoTileDrops)},
		{"doTraderSpawning", b(g.DoTraderSpawning)},
		{"doVinesSpread", b(g.DoVinesSpread)},
		{"doWeatherCycle", b(g.DoWeatherCycle)},
		{"doWardenSpawning", b(g.DoWardenSpawning)},
		{"drowningDamage", b(g.DrowningDamage)},
		{"enderPearlsVanishOnDeath", b(g.EnderPearlsVanishOnDeath)},
		{"fallDamage", b(g.FallDamage)},
		{"fireDamage", b(g.FireDamage)},
		{"forgiveDeadPlayers", b(g.ForgiveDeadPlayers)},
		{"freezeDamage", b(g.FreezeDamage)},
		{"globalSoundEvents", b(g.GlobalSoundEvents)},
		{"keepInventory", b(g.KeepInventory)},
		{"lavaSourceConversion", b(g.LavaSourceConversion)},
		{"logAdminCommands", b(g.LogAdminCommands)},
		{"maxCommandChainLength", u(g.MaxCommandChainLength)},
		{"maxCommandForkCount", u(g.MaxCommandForkCount)},
		{"maxEntityCramming", u(g.MaxEntityCramming)},
		{"mobExplosionDropDecay", b(g.MobExplosionDropDecay)},
		{"mobGriefing", b(g.MobGriefing)},
		{"naturalRegeneration", b(g.NaturalRegeneration)},
		{"playersNetherPortalCreativeDelay", u(g.PlayersNetherPortalCreativeDelay)},
		{"playersNetherPortalDefaultDelay", u(g.PlayersNetherPortalDefaultDelay)},
		{"playersSleepingPercentage", u(g.PlayersSleepingPercentage)},
		{"projectilesCanBreakBlocks", b(g.ProjectilesCanBreakBlocks)},
		{"randomTickSpeed", u(g.RandomTickSpeed)},
		{"reducedDebugInfo", b(g.ReducedDebugInfo)},
		{"sendCommandFeedback", b(g.SendCommandFeedback)},
		{"showDeathMessages", b(g.ShowDeathMessages)},
		{"snowAccumulationHeight", u(g.SnowAccumulationHeight)},
		{"spawnChunkRadius", u(g.SpawnChunkRadius)},
		{"spawnRadius", u(g.SpawnRadius)},
		{"spectatorsGenerateChunks", b(g.SpectatorsGenerateChunks)},
		{"tntExplosionDropDecay", b(g.TntExplosionDropDecay)},
		{"universalAnger", b(g.UniversalAnger)},
		{"waterSourceConversion", b(g.WaterSourceConversion)},
	}
}

// GameRules holds the per-world gamerule sets for the server, created
// lazily with vanilla defaults the first time a world is referenced.
type GameRules struct {
	mu  sync.Mutex
	set map[string]*GameRule
}

// NewGameRules returns an empty registry; worlds are populated on demand.
func NewGameRules() *GameRules {
	return &GameRules{set: make(map[string]*GameRule)}
}

// GetOrLoad returns the GameRule for world, creating it with vanilla
// defaults if this is the first reference.
func (g *GameRules) GetOrLoad(world string) *GameRule {
	g.mu.Lock()
	defer g.mu.Unlock()
	if rule, ok := g.set[world]; ok {
		return rule
	}
	rule := DefaultGameRule()
	g.set[world] = &rule
	return &rule
}
