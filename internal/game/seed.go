package game

import "fmt"

// tieredHints builds a record's hint list from per-tier content,
// assigning ids and contiguous per-tier orders.
func tieredHints(emperorID string, hard, medium, easy []string) []Hint {
	var out []Hint
	seq := 0
	add := func(tier Difficulty, contents []string) {
		for order, content := range contents {
			seq++
			out = append(out, Hint{
				ID:         fmt.Sprintf("%s-h%d", emperorID, seq),
				Content:    content,
				Difficulty: tier,
				Order:      order,
			})
		}
	}
	add(DifficultyHard, hard)
	add(DifficultyMedium, medium)
	add(DifficultyEasy, easy)
	return out
}

// DefaultEmperors is the seed dataset used when nothing valid is
// persisted. Every record carries at least 3 hard, 3 medium and 4 easy
// hints, and the set is large enough for a full ten-emperor round.
func DefaultEmperors() []Emperor {
	return []Emperor{
		{
			ID:             "qin-shi-huang",
			Name:           "Ying Zheng",
			TempleName:     "Qin Shi Huang",
			PosthumousName: "Shi Huangdi",
			ReignNames:     []string{"Shi Huang"},
			Dynasty:        "Qin",
			ReignStart:     -221,
			ReignEnd:       -210,
			Hints: tieredHints("qin-shi-huang",
				[]string{
					"His mother's favorite indirectly staged a rebellion against him.",
					"In his later years he was obsessed with finding an elixir of immortality.",
					"His successor was his eighteenth son.",
				},
				[]string{
					"He connected existing walls into a great northern frontier defense.",
					"He ordered books burned and scholars buried to enforce orthodoxy.",
					"He standardized writing, currency, weights and measures across his realm.",
				},
				[]string{
					"He conquered the six rival states and ended the Warring States period.",
					"He was the first ruler to use the title Huangdi, emperor.",
					"His tomb is guarded by the Terracotta Army.",
					"He founded the first centralized imperial dynasty of China.",
				}),
		},
		{
			ID:             "han-wu-di",
			Name:           "Liu Che",
			TempleName:     "Han Shizong",
			PosthumousName: "Wudi",
			ReignNames:     []string{"Jianyuan", "Yuanshou", "Taichu"},
			Dynasty:        "Western Han",
			ReignStart:     -141,
			ReignEnd:       -87,
			Hints: tieredHints("han-wu-di",
				[]string{
					"His great-grandson reigned under two different personal names.",
					"A single regent served him, his son and his great-grandson.",
					"He reigned for fifty-four years.",
				},
				[]string{
					"He sent Zhang Qian west, opening what became the Silk Road.",
					"He campaigned repeatedly against the Xiongnu and expanded the frontier.",
					"He made Confucianism the state orthodoxy.",
				},
				[]string{
					"He was the seventh emperor of the Western Han.",
					"His grandfather's reign opened the prosperous Wen-Jing era.",
					"He brought the Han dynasty to its greatest extent.",
					"He was a great-grandson of the dynasty's founder Liu Bang.",
				}),
		},
		{
			ID:             "tang-tai-zong",
			Name:           "Li Shimin",
			TempleName:     "Tang Taizong",
			PosthumousName: "Wendi",
			ReignNames:     []string{"Zhenguan"},
			Dynasty:        "Tang",
			ReignStart:     626,
			ReignEnd:       649,
			Hints: tieredHints("tang-tai-zong",
				[]string{
					"He took the throne after an ambush at his capital's north gate.",
					"Two of his own brothers died in the coup that made him heir.",
					"Frontier peoples honored him as the Heavenly Khagan.",
				},
				[]string{
					"His reign era is remembered as a model of good governance.",
					"He kept the blunt minister Wei Zheng close as his mirror.",
					"He sponsored the monk Xuanzang's return from India.",
				},
				[]string{
					"He was the second emperor of the Tang dynasty.",
					"He helped his father overthrow the Sui dynasty.",
					"His reign opened the Tang golden age.",
					"He is often ranked among the ablest emperors in Chinese history.",
				}),
		},
		{
			ID:             "wu-ze-tian",
			Name:           "Wu Zhao",
			TempleName:     "Wu Zetian",
			PosthumousName: "Empress Zetian",
			ReignNames:     []string{"Tianshou", "Shengli"},
			Dynasty:        "Zhou",
			ReignStart:     690,
			ReignEnd:       705,
			Hints: tieredHints("wu-ze-tian",
				[]string{
					"She entered the palace as a junior consort of one emperor and married his son.",
					"She proclaimed a new dynasty interrupting the Tang.",
					"She invented new written characters, including one for her own name.",
				},
				[]string{
					"She ruled through secret police yet widened the examination system.",
					"She moved the court from Chang'an to Luoyang.",
					"She was deposed in a palace coup in her eighties.",
				},
				[]string{
					"She is the only woman to rule China as emperor in her own right.",
					"She dominated the court for decades before taking the throne herself.",
					"Her memorial stele was famously left blank.",
					"Her sons' dynasty was restored after her abdication.",
				}),
		},
		{
			ID:             "song-tai-zu",
			Name:           "Zhao Kuangyin",
			TempleName:     "Song Taizu",
			PosthumousName: "Emperor Taizu of Song",
			ReignNames:     []string{"Jianlong", "Qiande", "Kaibao"},
			Dynasty:        "Northern Song",
			ReignStart:     960,
			ReignEnd:       976,
			Hints: tieredHints("song-tai-zu",
				[]string{
					"His troops draped the yellow robe on him at a post station mutiny.",
					"He relieved his generals of command over a cup of wine.",
					"His death one snowy night remains a subject of legend.",
				},
				[]string{
					"He ended the Five Dynasties period of short-lived regimes.",
					"He subordinated the military to civilian officials.",
					"His brother, not his son, succeeded him.",
				},
				[]string{
					"He founded the Song dynasty.",
					"He rose from palace guard commander to emperor.",
					"He reunified most of China proper after decades of division.",
					"His capital was at Kaifeng.",
				}),
		},
		{
			ID:             "yuan-shi-zu",
			Name:           "Kublai Khan",
			TempleName:     "Yuan Shizu",
			PosthumousName: "Setsen Khan",
			ReignNames:     []string{"Zhongtong", "Zhiyuan"},
			Dynasty:        "Yuan",
			ReignStart:     1260,
			ReignEnd:       1294,
			Hints: tieredHints("yuan-shi-zu",
				[]string{
					"He fought his younger brother for the title of great khan.",
					"Two of his invasion fleets were wrecked by storms the defenders called divine winds.",
					"A Venetian traveler claimed to have served at his court for years.",
				},
				[]string{
					"He moved his capital to the city that became Beijing.",
					"He completed the conquest of the Southern Song.",
					"He adopted a Chinese dynastic name meaning origin.",
				},
				[]string{
					"He was a grandson of Genghis Khan.",
					"He founded the Yuan dynasty.",
					"He was the first non-Han ruler of all China.",
					"His summer palace at Shangdu entered English verse as Xanadu.",
				}),
		},
		{
			ID:             "ming-tai-zu",
			Name:           "Zhu Yuanzhang",
			TempleName:     "Ming Taizu",
			PosthumousName: "Hongwu",
			ReignNames:     []string{"Hongwu"},
			Dynasty:        "Ming",
			ReignStart:     1368,
			ReignEnd:       1398,
			Hints: tieredHints("ming-tai-zu",
				[]string{
					"He spent part of his youth as a begging monk.",
					"He purged tens of thousands in cases built around his chancellor.",
					"He abolished the post of chancellor outright.",
				},
				[]string{
					"He rose through the Red Turban rebellion.",
					"He drove the Mongol court back to the steppe.",
					"He fixed his capital at Nanjing.",
				},
				[]string{
					"He founded the Ming dynasty.",
					"He was born a penniless peasant.",
					"His era name means vastly martial.",
					"His grandson's throne was usurped by one of his own sons.",
				}),
		},
		{
			ID:             "ming-cheng-zu",
			Name:           "Zhu Di",
			TempleName:     "Ming Chengzu",
			PosthumousName: "Yongle",
			ReignNames:     []string{"Yongle"},
			Dynasty:        "Ming",
			ReignStart:     1402,
			ReignEnd:       1424,
			Hints: tieredHints("ming-cheng-zu",
				[]string{
					"He took the throne from his own nephew in a civil war.",
					"He ordered the compilation of the largest encyclopedia of its age.",
					"He died on campaign north of the Great Wall.",
				},
				[]string{
					"He sent Zheng He's treasure fleets across the Indian Ocean.",
					"He moved the capital from Nanjing to Beijing.",
					"He rebuilt the Grand Canal to supply his new capital.",
				},
				[]string{
					"He built the Forbidden City.",
					"He was a son of the Ming founder.",
					"His era name means perpetual happiness.",
					"He was the third emperor of the Ming dynasty.",
				}),
		},
		{
			ID:             "qing-sheng-zu",
			Name:           "Xuanye",
			TempleName:     "Qing Shengzu",
			PosthumousName: "Kangxi",
			ReignNames:     []string{"Kangxi"},
			Dynasty:        "Qing",
			ReignStart:     1661,
			ReignEnd:       1722,
			Hints: tieredHints("qing-sheng-zu",
				[]string{
					"He took power as a teenager by arresting his own regent.",
					"He signed the first treaty between China and a European power.",
					"Jesuit missionaries tutored him in geometry and astronomy.",
				},
				[]string{
					"He put down the Revolt of the Three Feudatories.",
					"He took Taiwan from the house of Koxinga.",
					"He commissioned the standard character dictionary that bears his era name.",
				},
				[]string{
					"He reigned for sixty-one years, the longest of any emperor of China.",
					"He was the second Qing emperor to rule from Beijing.",
					"He came to the throne at the age of seven.",
					"His grandson deliberately stopped short of matching his reign length.",
				}),
		},
		{
			ID:             "qing-gao-zong",
			Name:           "Hongli",
			TempleName:     "Qing Gaozong",
			PosthumousName: "Qianlong",
			ReignNames:     []string{"Qianlong"},
			Dynasty:        "Qing",
			ReignStart:     1735,
			ReignEnd:       1796,
			Hints: tieredHints("qing-gao-zong",
				[]string{
					"He abdicated so as not to reign longer than his grandfather.",
					"He styled himself the Old Man of the Ten Complete Victories.",
					"His favorite minister amassed one of the largest private fortunes in history.",
				},
				[]string{
					"He commissioned the Four Treasuries, the largest book collection project ever.",
					"He rebuffed the Macartney embassy from Britain.",
					"He kept ruling behind the scenes after his abdication.",
				},
				[]string{
					"He was the fourth Qing emperor to rule from Beijing.",
					"His reign marked the high point and the turning point of the Qing.",
					"He inscribed poems on thousands of artworks in the palace collection.",
					"He reigned officially for sixty years.",
				}),
		},
	}
}
