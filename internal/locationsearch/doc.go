// Package locationsearch ищет место по свободному тексту: локальные списки
// регионов, районов и коммун плюс внешний геокодер.
//
// Catalog хранит загруженные списки, Searcher выполняет разовый поиск,
// Session держит состояние поля ввода с отложенным запросом к геокодеру.
package locationsearch
