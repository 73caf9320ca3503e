package contentapi

const shopProductsQuery = `
query ShopProducts($category: String, $search: String, $cursor: String) {
  products(
    first: 12,
    after: $cursor,
    where: {
      category: $category,
      search: $search,
      stockStatus: IN_STOCK,
      orderby: { field: DATE, order: DESC }
    }
  ) {
    pageInfo {
      hasNextPage
      endCursor
    }
    nodes {
      id
      databaseId
      name
      slug
      shortDescription
      image {
        sourceUrl
        altText
      }
      ... on SimpleProduct {
        price
        regularPrice
        stockStatus
      }
      ... on VariableProduct {
        price
        regularPrice
        stockStatus
      }
    }
  }
}`

const categoryProductsQuery = `
query CategoryProducts($slug: String!, $cursor: String) {
  productCategory(id: $slug, idType: SLUG) {
    products(first: 10, after: $cursor) {
      pageInfo {
        hasNextPage
        endCursor
      }
      nodes {
        id
        databaseId
        name
        slug
        image {
          sourceUrl
          altText
        }
        ... on SimpleProduct {
          price
          regularPrice
          stockStatus
        }
        ... on VariableProduct {
          price
          regularPrice
          stockStatus
        }
      }
    }
  }
}`

const searchProductsQuery = `
query SearchProducts($search: String!) {
  products(where: { search: $search }, first: 6) {
    nodes {
      id
      databaseId
      name
      slug
      image {
        sourceUrl
        altText
      }
      ... on SimpleProduct {
        price
        regularPrice
        stockStatus
      }
      ... on VariableProduct {
        price
        regularPrice
        stockStatus
      }
    }
  }
}`

const productBySlugQuery = `
query ProductBySlug($slug: ID!) {
  product(id: $slug, idType: SLUG) {
    id
    databaseId
    name
    slug
    description
    shortDescription
    image {
      sourceUrl
      altText
    }
    ... on SimpleProduct {
      price
      regularPrice
      stockStatus
    }
    ... on VariableProduct {
      price
      regularPrice
      stockStatus
    }
  }
}`

const postsQuery = `
query Posts($cursor: String) {
  posts(first: 10, after: $cursor, where: { orderby: { field: DATE, order: DESC } }) {
    pageInfo {
      hasNextPage
      endCursor
    }
    nodes {
      id
      databaseId
      title
      slug
      excerpt
      date
      featuredImage {
        node {
          sourceUrl
          altText
        }
      }
    }
  }
}`

const categoryPostsQuery = `
query CategoryPosts($slug: String!, $cursor: String) {
  posts(first: 10, after: $cursor, where: { categoryName: $slug, orderby: { field: DATE, order: DESC } }) {
    pageInfo {
      hasNextPage
      endCursor
    }
    nodes {
      id
      databaseId
      title
      slug
      excerpt
      date
      featuredImage {
        node {
          sourceUrl
          altText
        }
      }
    }
  }
}`

const postBySlugQuery = `
query PostBySlug($slug: ID!) {
  post(id: $slug, idType: SLUG) {
    id
    databaseId
    title
    slug
    content
    date
    featuredImage {
      node {
        sourceUrl
        altText
      }
    }
    comments(first: 50, where: { order: ASC }) {
      nodes {
        databaseId
        content
        date
        author {
          node {
            name
            avatar {
              url
            }
          }
        }
      }
    }
  }
}`

const menuQuery = `
query Menu {
  menuItems(where: { location: PRIMARY }, first: 100) {
    nodes {
      id
      label
      path
      parentId
      childItems {
        nodes {
          id
          label
          path
          childItems {
            nodes {
              id
              label
              path
            }
          }
        }
      }
    }
  }
}`

const createCommentMutation = `
mutation CreateComment($author: String!, $authorEmail: String!, $content: String!, $commentOn: Int!) {
  createComment(input: {
    author: $author,
    authorEmail: $authorEmail,
    content: $content,
    commentOn: $commentOn
  }) {
    success
    comment {
      databaseId
      content
      date
    }
  }
}`

const createOrderMutation = `
mutation CreateOrder($input: CreateOrderInput!) {
  createOrder(input: $input) {
    order {
      databaseId
      orderNumber
      status
    }
  }
}`
