package intent

// AliasEntry maps one canonical location name to its recognized
// variant spellings. Entries are matched in declaration order.
type AliasEntry struct {
	Canonical string
	Variants  []string
}

// AliasTable is an ordered alias mapping. Tables are built once at
// startup and never mutated, so they are safe to share across
// concurrent Parse calls.
type AliasTable []AliasEntry

// DefaultCityAliases returns the built-in city alias table used when
// no external table is configured.
func DefaultCityAliases() AliasTable {
	return AliasTable{
		{Canonical: "北京", Variants: []string{"北京市", "首都", "帝都"}},
		{Canonical: "上海", Variants: []string{"上海市", "魔都", "申城"}},
		{Canonical: "广州", Variants: []string{"广州市", "羊城"}},
		{Canonical: "深圳", Variants: []string{"深圳市", "鹏城"}},
		{Canonical: "杭州", Variants: []string{"杭州市"}},
		{Canonical: "南京", Variants: []string{"南京市", "金陵"}},
		{Canonical: "成都", Variants: []string{"成都市", "蓉城"}},
		{Canonical: "武汉", Variants: []string{"武汉市", "江城"}},
		{Canonical: "重庆", Variants: []string{"重庆市"}},
		{Canonical: "西安", Variants: []string{"西安市", "长安"}},
		{Canonical: "天津", Variants: []string{"天津市"}},
	}
}

// DefaultCategoryAliases returns the built-in destination category
// table. Categories are detected for classification only; matching
// one never rewrites the entity text, so "中心医院" stays "中心医院"
// rather than collapsing to a generic "医院".
func DefaultCategoryAliases() AliasTable {
	return AliasTable{
		{Canonical: "机场", Variants: []string{"国际机场", "航站楼"}},
		{Canonical: "火车站", Variants: []string{"高铁站", "动车站", "铁路站"}},
		{Canonical: "医院", Variants: []string{"人民医院", "中心医院", "诊所"}},
		{Canonical: "学校", Variants: []string{"大学", "中学", "小学"}},
		{Canonical: "超市", Variants: []string{"商场", "购物中心"}},
		{Canonical: "家", Variants: []string{"住处", "住所"}},
	}
}
