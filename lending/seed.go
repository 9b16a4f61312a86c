package lending

// initialBoardGames is the built-in catalog used on first run and after a
// full reset. Promote a new snapshot here via the export command.
var initialBoardGames = []BoardGame{
	{ID: 1, Name: "Avalon", Description: "เกมจับผู้ทรยศในราชสำนัก หาฝ่ายมอร์แกนให้เจอก่อนภารกิจล่ม", ImageURL: "https://images.boardgame.in.th/avalon.jpg", Category: CategoryParty, IsPopular: true},
	{ID: 2, Name: "Werewolf", Description: "เกมล่าหมาป่าในหมู่บ้าน เหมาะกับวงใหญ่ 8 คนขึ้นไป", ImageURL: "https://images.boardgame.in.th/werewolf.jpg", Category: CategoryParty},
	{ID: 3, Name: "Splendor", Description: "สะสมอัญมณีสร้างอาณาจักรการค้า เกมวางแผนเล่นง่ายจบไว", ImageURL: "https://images.boardgame.in.th/splendor.jpg", Category: CategoryStrategy},
	{ID: 4, Name: "Catan", Description: "จับจองเกาะคาทาน แลกเปลี่ยนทรัพยากรสร้างเมือง", ImageURL: "https://images.boardgame.in.th/catan.jpg", Category: CategoryStrategy, IsPopular: true},
	{ID: 5, Name: "Dixit", Description: "เกมการ์ดภาพปริศนา เล่าเรื่องจากภาพให้เพื่อนทาย", ImageURL: "https://images.boardgame.in.th/dixit.jpg", Category: CategoryFamily},
	{ID: 6, Name: "Codenames", Description: "ใบ้คำลับเชื่อมโยงรหัสลับของทีม ระวังคำต้องห้าม", ImageURL: "https://images.boardgame.in.th/codenames.jpg", Category: CategoryPuzzle, IsPopular: true},
	{ID: 7, Name: "Azul", Description: "ต่อกระเบื้องโมเสกตกแต่งพระราชวัง เกมครอบครัวภาพสวย", ImageURL: "https://images.boardgame.in.th/azul.jpg", Category: CategoryFamily},
	{ID: 8, Name: "Exploding Kittens", Description: "เกมการ์ดแมวระเบิด จั่วไว หนีไว อย่าให้แมวระเบิดใส่มือ", ImageURL: "https://images.boardgame.in.th/exploding-kittens.jpg", Category: CategoryParty},
}

// seedCatalog returns a fresh copy of the built-in catalog so callers can
// never mutate the seed itself.
func seedCatalog() []BoardGame {
	games := make([]BoardGame, len(initialBoardGames))
	copy(games, initialBoardGames)
	return games
}
