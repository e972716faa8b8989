package parser

import "strings"

// Названия категорий — контракт с клавиатурой и выученными маппингами.
const (
	CategoryFood          = "Еда и напитки"
	CategoryAlcohol       = "Алкоголь"
	CategoryTransport     = "Транспорт"
	CategoryComms         = "Связь и интернет"
	CategorySubscriptions = "Подписки"
	CategoryUtilities     = "Коммунальные платежи"
	CategoryFun           = "Развлечения"
	CategoryHousehold     = "Домашние расходы"
	CategoryHealth        = "Здоровье"
	CategoryClothes       = "Одежда"
	CategorySalary        = "Зарплата"
	CategoryIncome        = "Доход"

	CategoryOther        = "Прочее"
	CategoryMiscPayments = "Прочие платежи"
)

// PickList — категории для клавиатуры выбора, в порядке показа.
var PickList = []string{
	CategoryFood, CategoryAlcohol, CategoryTransport, CategoryComms,
	CategorySubscriptions, CategoryUtilities, CategoryFun,
	CategoryHousehold, CategoryHealth, CategoryClothes,
	CategoryMiscPayments, CategoryIncome,
}

// IsSentinel: «Прочее»/«Прочие платежи» значат «не смогли определить».
func IsSentinel(category string) bool {
	return category == "" || category == CategoryOther || category == CategoryMiscPayments
}

type rule struct {
	category string
	keywords []string
}

// Выигрывает первое совпадение: алкоголь раньше еды, зарплата раньше
// прочих доходов.
var categoryRules = []rule{
	{CategoryAlcohol, []string{"пиво", "вино", "виски", "водка", "коньяк", "шампанск", "алкогол", "бар"}},
	{CategoryFood, []string{"еда", "продукт", "кофе", "капучино", "латте", "чай", "обед", "ужин", "завтрак", "перекус", "кафе", "ресторан", "столов", "шаурма", "пицца", "суши", "хлеб", "молоко", "квас"}},
	{CategoryTransport, []string{"такси", "метро", "автобус", "троллейбус", "маршрутк", "бензин", "заправк", "парковк", "каршеринг", "проезд"}},
	{CategoryComms, []string{"интернет", "связь", "телефон", "мобильн", "тариф", "симк"}},
	{CategorySubscriptions, []string{"подписк", "netflix", "spotify", "youtube", "премиум", "iptv"}},
	{CategoryUtilities, []string{"жкх", "коммунал", "квартплат", "электрич", "свет", "вода", "газ", "отоплен"}},
	{CategoryFun, []string{"кино", "театр", "концерт", "боулинг", "квест", "развлечен", "игр"}},
	{CategoryHousehold, []string{"хозтовар", "бытов", "ремонт", "мебель", "посуд", "уборк"}},
	{CategoryHealth, []string{"аптек", "лекарств", "врач", "стоматолог", "анализ", "клиник", "витамин"}},
	{CategoryClothes, []string{"одежд", "обувь", "кроссовк", "куртк", "джинс", "футболк", "носк"}},
	{CategorySalary, []string{"зарплат", "аванс"}},
	{CategoryIncome, []string{"доход", "прибыль", "премия", "премию", "премии", "партнер", "партнёр", "кешбек", "кэшбек", "cashback", "дивиденд", "гонорар"}},
}

var incomeCategories = map[string]bool{
	CategorySalary: true,
	CategoryIncome: true,
}

// DetectCategory прогоняет текст по таблице правил; доходные категории не
// присваиваются расходным строкам.
func DetectCategory(text, opType string) string {
	t := strings.ToLower(text)
	for _, r := range categoryRules {
		if opType == TypeExpense && incomeCategories[r.category] {
			continue
		}
		for _, kw := range r.keywords {
			if strings.Contains(t, kw) {
				return r.category
			}
		}
	}
	return CategoryOther
}
