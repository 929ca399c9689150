package world

// Built-in maps. All are 10x10 and fully bordered by walls.

// SimpleCorridor is an open bordered room with the exit in the
// far corner.
func SimpleCorridor() []string {
	return []string{
		"WWWWWWWWWW",
		"W........W",
		"W........W",
		"W........W",
		"W........W",
		"W........W",
		"W........W",
		"W........W",
		"W.......EW",
		"WWWWWWWWWW",
	}
}

// CorridorWithTurn forces at least one turn before the exit.
func CorridorWithTurn() []string {
	return []string{
		"WWWWWWWWWW",
		"W........W",
		"W........W",
		"W........W",
		"W....WWWWW",
		"W....W...W",
		"W....W...W",
		"W....W...W",
		"W...EW...W",
		"WWWWWWWWWW",
	}
}

// RoomWithKeyAndDoor places a key on the open floor and a door that is
// the only gap in the wall sealing off the exit half of the room.
func RoomWithKeyAndDoor() []string {
	return []string{
		"WWWWWWWWWW",
		"W..K.....W",
		"W........W",
		"WWWWWWWWDW",
		"W........W",
		"W........W",
		"W........W",
		"W........W",
		"W.......EW",
		"WWWWWWWWWW",
	}
}

// ComplexMaze is a maze with a keyed door on the inner path.
func ComplexMaze() []string {
	return []string{
		"WWWWWWWWWW",
		"W.K......W",
		"W.WWWW...W",
		"W.WDWW...W",
		"W.W..W...W",
		"W.WW.W...W",
		"W.WW.W...W",
		"W.WW.W...W",
		"W......E.W",
		"WWWWWWWWWW",
	}
}

// BuiltinMaps maps map names to their constructors, for the CLI.
func BuiltinMaps() map[string]func() []string {
	return map[string]func() []string{
		"corridor":      SimpleCorridor,
		"corridor_turn": CorridorWithTurn,
		"key_and_door":  RoomWithKeyAndDoor,
		"maze":          ComplexMaze,
	}
}
