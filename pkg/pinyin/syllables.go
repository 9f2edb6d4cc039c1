// Package pinyin recognizes Mandarin Pinyin syllables.
//
// It builds an immutable trie over every valid syllable in its bare,
// numbered-tone and diacritic-marked forms, persists it, and segments
// unspaced romanized text into syllables by greedy longest match.
package pinyin

// syllables lists the phonotactically valid Mandarin bases, grouped by final.
// Spellings with ü also appear with the ASCII v fallback at the end.
var syllables = []string{
	"zhi", "chi", "shi", "ri", "zi", "ci", "si",
	"a", "ba", "pa", "ma", "fa", "da", "ta", "na", "la", "ga", "ka", "ha", "zha", "cha", "sha", "za", "ca", "sa",
	"o", "bo", "po", "mo", "fo", "lo",
	"e", "me", "de", "te", "ne", "le", "ge", "ke", "he", "zhe", "che", "she", "re", "ze", "ce", "se",
	"ai", "bai", "pai", "mai", "dai", "tai", "nai", "lai", "gai", "kai", "hai", "zhai", "chai", "shai", "zai", "cai", "sai",
	"ei", "bei", "pei", "mei", "fei", "dei", "tei", "nei", "lei", "gei", "kei", "hei", "zhei", "shei", "zei", "sei",
	"ao", "bao", "pao", "mao", "dao", "tao", "nao", "lao", "gao", "kao", "hao", "zhao", "chao", "shao", "rao", "zao", "cao", "sao",
	"ou", "pou", "mou", "fou", "dou", "tou", "nou", "lou", "gou", "kou", "hou", "zhou", "chou", "shou", "rou", "zou", "cou", "sou",
	"an", "ban", "pan", "man", "fan", "dan", "tan", "nan", "lan", "gan", "kan", "han", "zhan", "chan", "shan", "ran", "zan", "can", "san",
	"en", "ben", "pen", "men", "fen", "den", "nen", "gen", "ken", "hen", "zhen", "chen", "shen", "ren", "zen", "cen", "sen",
	"ang", "bang", "pang", "mang", "fang", "dang", "tang", "nang", "lang", "gang", "kang", "hang", "zhang", "chang", "shang", "rang", "zang", "cang", "sang",
	"eng", "beng", "peng", "meng", "feng", "deng", "teng", "neng", "leng", "geng", "keng", "heng", "zheng", "cheng", "sheng", "reng", "zeng", "ceng", "seng",
	"er",
	"yi", "bi", "pi", "mi", "di", "ti", "ni", "li", "ji", "qi", "xi",
	"ya", "dia", "nia", "lia", "jia", "qia", "xia",
	"yo",
	"ye", "bie", "pie", "mie", "die", "tie", "nie", "lie", "jie", "qie", "xie",
	"yai",
	"yao", "biao", "piao", "miao", "fiao", "diao", "tiao", "niao", "liao", "jiao", "qiao", "xiao",
	"you", "miu", "diu", "niu", "liu", "jiu", "qiu", "xiu",
	"yan", "bian", "pian", "mian", "dian", "tian", "nian", "lian", "jian", "qian", "xian",
	"yin", "bin", "pin", "min", "nin", "lin", "jin", "qin", "xin",
	"yang", "biang", "diang", "niang", "liang", "jiang", "qiang", "xiang",
	"ying", "bing", "ping", "ming", "ding", "ting", "ning", "ling", "jing", "qing", "xing",
	"wu", "bu", "pu", "mu", "fu", "du", "tu", "nu", "lu", "gu", "ku", "hu", "zhu", "chu", "shu", "ru", "zu", "cu", "su",
	"wa", "gua", "kua", "hua", "zhua", "chua", "shua", "rua",
	"wo", "duo", "tuo", "nuo", "luo", "guo", "kuo", "huo", "zhuo", "chuo", "shuo", "ruo", "zuo", "cuo", "suo",
	"wai", "guai", "kuai", "huai", "zhuai", "chuai", "shuai",
	"wei", "dui", "tui", "gui", "kui", "hui", "zhui", "chui", "shui", "rui", "zui", "cui", "sui",
	"wan", "duan", "tuan", "nuan", "luan", "guan", "kuan", "huan", "zhuan", "chuan", "shuan", "ruan", "zuan", "cuan", "suan",
	"wen", "dun", "tun", "nun", "lun", "gun", "kun", "hun", "zhun", "chun", "shun", "run", "zun", "cun", "sun",
	"wang", "guang", "kuang", "huang", "zhuang", "chuang", "shuang",
	"weng", "dong", "tong", "nong", "long", "gong", "kong", "hong", "zhong", "chong", "shong", "rong", "zong", "cong", "song",
	"yu", "nü", "lü", "ju", "qu", "xu",
	"yue", "nüe", "lüe", "jue", "que", "xue",
	"yuan", "juan", "quan", "xuan",
	"yun", "lün", "jun", "qun", "xun",
	"yong", "jiong", "qiong", "xiong",
	"nv", "lv", "nve", "lve", "lvn",
}

// MaxTone is the highest tone digit accepted in numbered syllables.
// 0 and 5 both denote the neutral tone.
const MaxTone = 5

// Syllables returns a copy of the valid syllable bases.
func Syllables() []string {
	out := make([]string, len(syllables))
	copy(out, syllables)
	return out
}

// IsSyllable reports whether s is one of the bare syllable bases.
func IsSyllable(s string) bool {
	_, ok := syllableSet[s]
	return ok
}

var syllableSet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(syllables))
	for _, s := range syllables {
		m[s] = struct{}{}
	}
	return m
}()
