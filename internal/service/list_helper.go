package service

import "go-bloglist-api/internal/model"

func TotalLikes(blogs []model.Blog) int {
	total := 0
	for _, b := range blogs {
		total += b.Likes
	}
	return total
}

// FavoriteBlog returns the most liked blog; the earliest one wins ties.
func FavoriteBlog(blogs []model.Blog) *model.Blog {
	if len(blogs) == 0 {
		return nil
	}

	favorite := blogs[0]
	for _, b := range blogs[1:] {
		if b.Likes > favorite.Likes {
			favorite = b
		}
	}
	return &favorite
}

// MostBlogs returns the author with the most blogs. On a tie the author who
// appeared last in the collection wins.
func MostBlogs(blogs []model.Blog) *model.AuthorBlogs {
	authors, totals := tallyByAuthor(blogs, func(model.Blog) int { return 1 })
	if len(authors) == 0 {
		return nil
	}

	best := authors[0]
	for _, author := range authors[1:] {
		if totals[author] >= totals[best] {
			best = author
		}
	}
	return &model.AuthorBlogs{Author: best, Blogs: totals[best]}
}

// MostLikes returns the author whose blogs have the most likes in total,
// breaking ties the same way as MostBlogs.
func MostLikes(blogs []model.Blog) *model.AuthorLikes {
	authors, totals := tallyByAuthor(blogs, func(b model.Blog) int { return b.Likes })
	if len(authors) == 0 {
		return nil
	}

	best := authors[0]
	for _, author := range authors[1:] {
		if totals[author] >= totals[best] {
			best = author
		}
	}
	return &model.AuthorLikes{Author: best, Likes: totals[best]}
}

func tallyByAuthor(blogs []model.Blog, weight func(model.Blog) int) ([]string, map[string]int) {
	order := make([]string, 0)
	totals := map[string]int{}
	for _, b := range blogs {
		if _, seen := totals[b.Author]; !seen {
			order = append(order, b.Author)
		}
		totals[b.Author] += weight(b)
	}
	return order, totals
}
