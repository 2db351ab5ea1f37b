package keywords

import "sort"

// skillCategories 静态技能分类表：类别 -> 类内技能。
// 推荐逻辑是纯查表：缺失技能的推荐项是它同类别的兄弟技能
var skillCategories = map[string][]string{
	"languages": {"python", "java", "c++", "go", "javascript", "typescript"},
	"databases": {"sql", "mysql", "postgresql", "mongodb", "redis"},
	"ml":        {"machine learning", "deep learning", "nlp", "data analysis", "computer vision"},
	"devops":    {"docker", "kubernetes", "terraform", "linux", "aws"},
}

// skillToCategory 技能到类别的反向索引
var skillToCategory = func() map[string]string {
	m := make(map[string]string)
	for category, skills := range skillCategories {
		for _, s := range skills {
			m[s] = category
		}
	}
	return m
}()

// SiblingSkills 返回技能同类别下的其他技能（字典序）。
// 不在分类表中的技能返回空切片
func SiblingSkills(skill string) []string {
	category, ok := skillToCategory[skill]
	if !ok {
		return []string{}
	}
	siblings := make([]string, 0, len(skillCategories[category])-1)
	for _, s := range skillCategories[category] {
		if s != skill {
			siblings = append(siblings, s)
		}
	}
	sort.Strings(siblings)
	return siblings
}
